package flags

import (
	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "GAUNTLET"

func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	ClientHost = &cli.StringFlag{
		Name:    "client-host",
		Value:   "192.0.2.2",
		EnvVars: prefixEnvVars("CLIENT_HOST"),
		Usage:   "IP of the client host behind the appliance",
	}
	SSHUser = &cli.StringFlag{
		Name:    "ssh-user",
		EnvVars: prefixEnvVars("SSH_USER"),
		Usage:   "SSH login for the client host",
	}
	SSHKeyFile = &cli.StringFlag{
		Name:    "ssh-key-file",
		EnvVars: prefixEnvVars("SSH_KEY_FILE"),
		Usage:   "SSH identity (key) file for the client host",
	}
	Profile = &cli.StringFlag{
		Name:    "profile",
		EnvVars: prefixEnvVars("PROFILE"),
		Usage:   "Path to the appliance profile file (eg. 'target.yaml')",
	}
	LogFile = &cli.StringFlag{
		Name:    "logfile",
		Aliases: []string{"l"},
		Value:   "/tmp/gauntlet.log",
		EnvVars: prefixEnvVars("LOGFILE"),
		Usage:   "Path for the captured per-test output log",
	}
	Verbose = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		EnvVars: prefixEnvVars("VERBOSE"),
		Usage:   "Increase report detail (repeatable)",
	}
	FailFast = &cli.BoolFlag{
		Name:    "fail-fast",
		Aliases: []string{"q"},
		EnvVars: prefixEnvVars("FAIL_FAST"),
		Usage:   "Stop the entire campaign at the first test failure",
	}
	Repeat = &cli.BoolFlag{
		Name:    "repeat",
		Aliases: []string{"r"},
		EnvVars: prefixEnvVars("REPEAT"),
		Usage:   "Repeat the full suite list indefinitely (or until repeat-count)",
	}
	RepeatCount = &cli.IntFlag{
		Name:    "repeat-count",
		Aliases: []string{"c"},
		EnvVars: prefixEnvVars("REPEAT_COUNT"),
		Usage:   "Repeat the full suite list this many times (implies --repeat)",
	}
	Suites = &cli.StringFlag{
		Name:    "suites",
		Aliases: []string{"t"},
		Value:   "all",
		EnvVars: prefixEnvVars("SUITES"),
		Usage:   "Comma separated list of suites to run (eg. 'nftables,dictionary')",
	}
	ExcludeSuites = &cli.StringFlag{
		Name:    "exclude-suites",
		Aliases: []string{"e"},
		EnvVars: prefixEnvVars("EXCLUDE_SUITES"),
		Usage:   "Comma separated list of suites to exclude",
	}
	Tests = &cli.StringFlag{
		Name:    "tests",
		Aliases: []string{"T"},
		Value:   "all",
		EnvVars: prefixEnvVars("TESTS"),
		Usage:   "Comma separated list of test units to run within the selected suites",
	}
	ExcludeTests = &cli.StringFlag{
		Name:    "exclude-tests",
		Aliases: []string{"E"},
		EnvVars: prefixEnvVars("EXCLUDE_TESTS"),
		Usage:   "Comma separated list of test units to exclude",
	}
	QuickOnly = &cli.BoolFlag{
		Name:    "quick",
		Aliases: []string{"z"},
		EnvVars: prefixEnvVars("QUICK"),
		Usage:   "Skip lengthy test units (cooperative; units self-exclude)",
	}
	ExternalInterface = &cli.IntFlag{
		Name:    "external-interface",
		Aliases: []string{"d"},
		Value:   1,
		EnvVars: prefixEnvVars("EXTERNAL_INTERFACE"),
		Usage:   "Interface ID of the external (outside) interface",
	}
	InternalInterface = &cli.IntFlag{
		Name:    "internal-interface",
		Aliases: []string{"s"},
		Value:   2,
		EnvVars: prefixEnvVars("INTERNAL_INTERFACE"),
		Usage:   "Interface ID of the internal (client) interface",
	}
)

var Flags = []cli.Flag{
	ClientHost,
	SSHUser,
	SSHKeyFile,
	Profile,
	LogFile,
	Verbose,
	FailFast,
	Repeat,
	RepeatCount,
	Suites,
	ExcludeSuites,
	Tests,
	ExcludeTests,
	QuickOnly,
	ExternalInterface,
	InternalInterface,
}
