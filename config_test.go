package gauntlet

import (
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwlab/gauntlet/flags"
)

// parseConfig runs the real flag definitions against an argv and captures the
// resulting Config, so tests exercise the same code path as the binary.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Name:  "gauntlet",
		Flags: flags.Flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, testLogger())
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"gauntlet"}, args...)))
	return cfg, cfgErr
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(t)
	require.NoError(t, err)

	assert.Equal(t, []string{"all"}, cfg.Suites)
	assert.Equal(t, []string{"all"}, cfg.Tests)
	assert.Empty(t, cfg.ExcludeSuites)
	assert.Empty(t, cfg.ExcludeTests)
	assert.False(t, cfg.FailFast)
	assert.False(t, cfg.Repeat)
	assert.Zero(t, cfg.RepeatCount)
	assert.Zero(t, cfg.Verbosity)
	assert.False(t, cfg.QuickOnly)
	assert.Equal(t, "192.0.2.2", cfg.ClientHost)
	assert.Equal(t, 1, cfg.ExternalInterface)
	assert.Equal(t, 2, cfg.InternalInterface)
}

func TestNewConfigListParsing(t *testing.T) {
	cfg, err := parseConfig(t,
		"--suites", "settings, nftables,,dict",
		"--exclude-tests", " block_client_traffic ")
	require.NoError(t, err)

	assert.Equal(t, []string{"settings", "nftables", "dict"}, cfg.Suites)
	assert.Equal(t, []string{"block_client_traffic"}, cfg.ExcludeTests)
}

func TestNewConfigEmptySuiteList(t *testing.T) {
	_, err := parseConfig(t, "--suites", " , ")
	require.ErrorContains(t, err, "suite list must not be empty")
}

func TestNewConfigEmptyTestList(t *testing.T) {
	_, err := parseConfig(t, "--tests", "")
	require.ErrorContains(t, err, "test list must not be empty")
}

func TestNewConfigVerbosityCounts(t *testing.T) {
	cfg, err := parseConfig(t, "-v", "-v", "-v")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Verbosity)
}

func TestNewConfigRepeatModes(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		repeat      bool
		repeatCount int
	}{
		{name: "repeat flag alone is unbounded", args: []string{"--repeat"}, repeat: true, repeatCount: 0},
		{name: "count alone implies repeat", args: []string{"--repeat-count", "5"}, repeat: true, repeatCount: 5},
		{name: "both flags", args: []string{"--repeat", "--repeat-count", "2"}, repeat: true, repeatCount: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parseConfig(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.repeat, cfg.Repeat)
			assert.Equal(t, tc.repeatCount, cfg.RepeatCount)
		})
	}
}

func TestNewConfigNegativeRepeatCount(t *testing.T) {
	_, err := parseConfig(t, "--repeat-count", "-3")
	require.ErrorContains(t, err, "repeat count must be positive")
}

func TestNewConfigLogFileAbsolute(t *testing.T) {
	cfg, err := parseConfig(t, "--logfile", "/tmp/run.log")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/run.log", cfg.LogFile)

	cfg, err = parseConfig(t, "--logfile", "run.log")
	require.NoError(t, err)
	assert.True(t, cfg.LogFile != "run.log" && cfg.LogFile[0] == '/',
		"relative log paths resolve to absolute: %s", cfg.LogFile)
}

func TestNewConfigShortAliases(t *testing.T) {
	cfg, err := parseConfig(t, "-q", "-z", "-t", "dict", "-e", "reports", "-r")
	require.NoError(t, err)

	assert.True(t, cfg.FailFast)
	assert.True(t, cfg.QuickOnly)
	assert.True(t, cfg.Repeat)
	assert.Equal(t, []string{"dict"}, cfg.Suites)
	assert.Equal(t, []string{"reports"}, cfg.ExcludeSuites)
}
