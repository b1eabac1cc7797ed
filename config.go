package gauntlet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/fwlab/gauntlet/flags"
)

// Config holds the run configuration. It is parsed once from the command
// line and immutable afterwards; the campaign controller and suite runner
// only ever read it.
type Config struct {
	// Target identity; opaque to the orchestration core, consumed by the
	// appliance collaborators.
	ClientHost        string
	SSHUser           string
	SSHKeyFile        string
	ProfilePath       string
	ExternalInterface int
	InternalInterface int

	LogFile   string
	Verbosity int

	FailFast    bool
	Repeat      bool
	RepeatCount int // 0 means unbounded when Repeat is set

	Suites        []string
	ExcludeSuites []string
	Tests         []string
	ExcludeTests  []string
	QuickOnly     bool

	Log log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	logFile, err := filepath.Abs(ctx.String(flags.LogFile.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for log file '%s': %w", ctx.String(flags.LogFile.Name), err)
	}

	repeatCount := ctx.Int(flags.RepeatCount.Name)
	if repeatCount < 0 {
		return nil, fmt.Errorf("repeat count must be positive, got %d", repeatCount)
	}
	// An explicit count makes the repetition finite; either flag enables
	// repeat mode.
	repeat := ctx.Bool(flags.Repeat.Name) || repeatCount > 0

	suites := splitList(ctx.String(flags.Suites.Name))
	if len(suites) == 0 {
		return nil, fmt.Errorf("suite list must not be empty")
	}
	tests := splitList(ctx.String(flags.Tests.Name))
	if len(tests) == 0 {
		return nil, fmt.Errorf("test list must not be empty")
	}

	return &Config{
		ClientHost:        ctx.String(flags.ClientHost.Name),
		SSHUser:           ctx.String(flags.SSHUser.Name),
		SSHKeyFile:        ctx.String(flags.SSHKeyFile.Name),
		ProfilePath:       ctx.String(flags.Profile.Name),
		ExternalInterface: ctx.Int(flags.ExternalInterface.Name),
		InternalInterface: ctx.Int(flags.InternalInterface.Name),
		LogFile:           logFile,
		Verbosity:         ctx.Count(flags.Verbose.Name),
		FailFast:          ctx.Bool(flags.FailFast.Name),
		Repeat:            repeat,
		RepeatCount:       repeatCount,
		Suites:            suites,
		ExcludeSuites:     splitList(ctx.String(flags.ExcludeSuites.Name)),
		Tests:             tests,
		ExcludeTests:      splitList(ctx.String(flags.ExcludeTests.Name)),
		QuickOnly:         ctx.Bool(flags.QuickOnly.Name),
		Log:               logger,
	}, nil
}

// splitList parses a comma separated name set, dropping empty elements.
func splitList(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
