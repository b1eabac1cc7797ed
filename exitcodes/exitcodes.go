// Package exitcodes defines the standard exit codes used by gauntlet.
package exitcodes

// Exit code constants used by gauntlet.
//
// A finished campaign exits with the cumulative failure count, so any code
// in [1, FailureCap] means "that many test units failed". The codes above
// FailureCap are reserved for conditions that abort the campaign before or
// instead of a normal summary:
//
//   - Success (0): every executed test unit passed or was skipped
//   - ConfigErr (125): malformed arguments or an unknown suite name
//   - EnvironmentFailure (126): the mandatory environment sanity suite failed
//   - Interrupted (130): hard exit after repeated interrupts (128+SIGINT)
const (
	Success            = 0
	FailureCap         = 124
	ConfigErr          = 125
	EnvironmentFailure = 126
	Interrupted        = 130
)

// FromFailures maps a cumulative failure count to a process exit code.
func FromFailures(failed int) int {
	if failed <= 0 {
		return Success
	}
	if failed > FailureCap {
		return FailureCap
	}
	return failed
}
