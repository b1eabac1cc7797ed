package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	gauntlet "github.com/fwlab/gauntlet"
	"github.com/fwlab/gauntlet/exitcodes"
	"github.com/fwlab/gauntlet/flags"
	"github.com/fwlab/gauntlet/interrupt"
	"github.com/fwlab/gauntlet/logging"
	"github.com/fwlab/gauntlet/registry"
	"github.com/fwlab/gauntlet/service"
	"github.com/fwlab/gauntlet/suites"
	"github.com/fwlab/gauntlet/target"
)

var (
	Version   = "v0.3.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "gauntlet"
	app.Usage = "Packet-filter appliance integration test harness"
	app.Description = "gauntlet runs test campaigns against the appliance's settings API, packet-filter CLI and kernel dictionary"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			switch {
			case gauntlet.IsEnvironmentError(err):
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.EnvironmentFailure))
			case gauntlet.IsCampaignError(err):
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.FromFailures(gauntlet.FailureCount(err))))
			default:
				// Configuration problems and anything unclassified abort
				// before tests run.
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.ConfigErr))
			}
		}
	}

	if err := app.Run(os.Args); err != nil {
		// Unrecognized options or malformed values land here before the
		// action ever runs; usage has already been printed.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.ConfigErr)
	}
}

func run(cliCtx *cli.Context) error {
	logger := newLogger(cliCtx.Count(flags.Verbose.Name))
	log.SetDefault(logger)

	cfg, err := gauntlet.NewConfig(cliCtx, logger)
	if err != nil {
		return gauntlet.NewConfigError(err)
	}

	profile, err := loadProfile(cliCtx, cfg)
	if err != nil {
		return gauntlet.NewConfigError(err)
	}
	tgt := target.New(profile, logger)

	sink, err := logging.NewSink(cfg.LogFile, os.Stdout)
	if err != nil {
		return gauntlet.NewConfigError(err)
	}
	defer sink.Close()

	reg := registry.New(logger)
	if err := suites.RegisterAll(reg, tgt); err != nil {
		return gauntlet.NewConfigError(err)
	}

	stop := interrupt.NewToken()
	uninstall := interrupt.Notify(stop, logger)
	defer uninstall()

	campaign, err := gauntlet.NewCampaign(cfg, reg, sink, stop)
	if err != nil {
		return gauntlet.NewConfigError(err)
	}

	// Repeat-mode campaigns run long enough to be worth supervising.
	if cfg.Repeat {
		svc := service.New(logger, func() bool {
			return campaign.Phase() != gauntlet.PhaseDone
		})
		svc.Start(cliCtx.Context)
		defer svc.Shutdown()
	}

	return campaign.Run(cliCtx.Context)
}

// loadProfile builds the appliance profile, starting from the profile file
// (or defaults) and applying explicitly given command-line overrides on top.
func loadProfile(cliCtx *cli.Context, cfg *gauntlet.Config) (*target.Profile, error) {
	profile := target.DefaultProfile()
	if cfg.ProfilePath != "" {
		var err error
		profile, err = target.LoadProfile(cfg.ProfilePath)
		if err != nil {
			return nil, err
		}
	}
	if cliCtx.IsSet(flags.ClientHost.Name) {
		profile.ClientHost = cfg.ClientHost
	}
	if cliCtx.IsSet(flags.SSHUser.Name) {
		profile.SSHUser = cfg.SSHUser
	}
	if cliCtx.IsSet(flags.SSHKeyFile.Name) {
		profile.SSHKeyFile = cfg.SSHKeyFile
	}
	if cliCtx.IsSet(flags.ExternalInterface.Name) {
		profile.ExternalInterface = cfg.ExternalInterface
	}
	if cliCtx.IsSet(flags.InternalInterface.Name) {
		profile.InternalInterface = cfg.InternalInterface
	}
	return profile, nil
}

func newLogger(verbosity int) log.Logger {
	level := log.LevelInfo
	switch {
	case verbosity >= 2:
		level = log.LevelTrace
	case verbosity == 1:
		level = log.LevelDebug
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, false))
}
