package types

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
)

// EnvironmentSuiteName is the reserved name of the mandatory pre-flight
// suite. It always runs first and its failure aborts the whole campaign.
const EnvironmentSuiteName = "environment"

// AllSentinel is the selector that expands to every registered name.
const AllSentinel = "all"

// ErrSkip signals that a test unit chose not to run. Unit bodies and setup
// hooks wrap it (see Skip) to be tallied as skipped rather than failed.
var ErrSkip = errors.New("skipped")

// Skip returns an error that the runner records as a skip outcome.
func Skip(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, args...))
}

// Env is the execution environment handed to every hook and unit body.
// All output a unit produces goes to Output (the campaign log sink), never
// to the process streams.
type Env struct {
	Ctx       context.Context
	Log       log.Logger
	Output    io.Writer
	Verbosity int
	QuickOnly bool
}

// Logf writes a line of captured test output to the log sink.
func (e *Env) Logf(format string, args ...any) {
	if e.Output == nil {
		return
	}
	fmt.Fprintf(e.Output, format+"\n", args...)
}

// SkipLong is the cooperative guard long-running units call first. The core
// never filters by duration itself; it only carries the quick-only flag.
func (e *Env) SkipLong() error {
	if e.QuickOnly {
		return Skip("long-running unit excluded by quick-only")
	}
	return nil
}

// Hook is an optional lifecycle callback (suite setup/teardown, per-unit
// setup). A nil Hook means the suite does not implement it.
type Hook func(env *Env) error

// Unit is a single named, independently executable check. The body signals
// its outcome only through its error: nil is a pass, an error wrapping
// ErrSkip is a skip, anything else (including a panic) is a failure.
type Unit struct {
	Name  string
	Setup Hook
	Run   func(env *Env) error
}

// Suite is a named, ordered collection of test units sharing fixtures.
// Suites are registered once at startup and never mutated afterwards.
type Suite struct {
	Name        string
	Description string
	Setup       Hook
	Teardown    Hook
	Units       []Unit
}
