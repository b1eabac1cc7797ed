// Package runner executes a single suite's lifecycle: suite setup, filtered
// test unit iteration with per-unit setup, and suite teardown, producing a
// tally of outcomes. It never runs units in parallel; suites drive a shared
// appliance and the ordering within a suite is part of its contract.
package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/fwlab/gauntlet/interrupt"
	"github.com/fwlab/gauntlet/logging"
	"github.com/fwlab/gauntlet/metrics"
	"github.com/fwlab/gauntlet/types"
)

// Config holds everything a Runner needs to execute suites.
type Config struct {
	Log        log.Logger
	Sink       *logging.Sink
	Stop       *interrupt.Token
	FailFast   bool
	QuickOnly  bool
	Verbosity  int
	Include    []string // unit name include list; the "all" sentinel selects everything
	Exclude    []string // unit name exclude list; always wins over Include
	CampaignID string
}

// Runner executes one suite at a time against a fixed configuration.
type Runner struct {
	cfg Config
}

// New creates a suite runner.
func New(cfg Config) (*Runner, error) {
	if cfg.Sink == nil {
		return nil, fmt.Errorf("log sink is required")
	}
	if cfg.Stop == nil {
		return nil, fmt.Errorf("stop token is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}
	if len(cfg.Include) == 0 {
		cfg.Include = []string{types.AllSentinel}
	}
	return &Runner{cfg: cfg}, nil
}

// RunSuite executes the suite's full lifecycle and returns its result.
// If a stop has already been requested, the suite does not start and a zero
// tally comes back.
func (r *Runner) RunSuite(ctx context.Context, suite *types.Suite) *types.SuiteResult {
	result := &types.SuiteResult{Name: suite.Name}
	if r.stopped(ctx) {
		return result
	}

	start := time.Now()
	r.cfg.Sink.SuiteStart(suite.Name)

	env := r.newEnv(ctx)

	// Suite setup runs with its output captured in the log sink. A failing
	// setup leaves the fixture in an unknown state, so every selected unit
	// is recorded as skipped instead of being run against it.
	if suite.Setup != nil {
		if err := r.runHook(env, suite.Setup); err != nil {
			r.cfg.Log.Error("Suite setup failed", "suite", suite.Name, "err", err)
			env.Logf("suite setup error: %v", err)
			result.SetupErr = err
		}
	}

	if result.SetupErr != nil {
		r.skipAllUnits(suite, result)
	} else {
		if done := r.runUnits(ctx, env, suite, result); done {
			// Fail-fast exit: teardown is intentionally bypassed so the
			// failing state stays inspectable on the appliance.
			result.Duration = time.Since(start)
			return result
		}
	}

	// Teardown runs after the unit loop whether it completed or was cut
	// short by an interrupt. Its errors are logged and never change counts.
	if suite.Teardown != nil {
		if err := r.runHook(env, suite.Teardown); err != nil {
			r.cfg.Log.Error("Suite teardown failed", "suite", suite.Name, "err", err)
			env.Logf("suite teardown error: %v", err)
		}
	}

	result.Duration = time.Since(start)
	r.cfg.Sink.SuiteEnd(suite.Name, result.Duration)
	metrics.RecordSuite(r.cfg.CampaignID, suite.Name, result.Duration)
	return result
}

// runUnits iterates the suite's units in order. It returns true when a
// fail-fast exit was taken and the caller must skip teardown.
func (r *Runner) runUnits(ctx context.Context, env *types.Env, suite *types.Suite, result *types.SuiteResult) bool {
	for _, unit := range suite.Units {
		if !r.selected(unit.Name) {
			continue
		}

		unitStart := time.Now()
		r.cfg.Sink.UnitStart(unit.Name)
		outcome, err := r.executeUnit(env, unit)
		r.cfg.Sink.UnitEnd(unit.Name)
		elapsed := time.Since(unitStart)

		result.Tally.Record(outcome)
		result.Units = append(result.Units, types.UnitResult{
			Name:     unit.Name,
			Outcome:  outcome,
			Err:      err,
			Duration: elapsed,
		})
		metrics.RecordUnit(r.cfg.CampaignID, suite.Name, unit.Name, outcome)

		switch outcome {
		case types.OutcomeFail:
			r.cfg.Sink.Console("Test FAILED  : %s [%.1fs]", unit.Name, elapsed.Seconds())
			if r.cfg.FailFast {
				r.cfg.Stop.Stop()
				return true
			}
		case types.OutcomeSkip:
			r.cfg.Sink.Console("Test skipped : %s [%.1fs]", unit.Name, elapsed.Seconds())
		default:
			r.cfg.Sink.Console("Test success : %s [%.1fs]", unit.Name, elapsed.Seconds())
		}

		// An interrupt during the unit stops the iteration here, at the
		// unit boundary; the suite keeps its partial tally and teardown
		// still runs below.
		if r.stopped(ctx) {
			break
		}
	}
	return false
}

// executeUnit runs one unit's optional setup hook and its body, converting
// panics and errors into exactly one of the three outcomes. Failures never
// propagate past the unit boundary.
func (r *Runner) executeUnit(env *types.Env, unit types.Unit) (outcome types.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			outcome = types.OutcomeFail
			r.cfg.Log.Error("Panic in test unit", "unit", unit.Name, "err", err)
			env.Logf("panic in %s: %v", unit.Name, rec)
		}
	}()

	if unit.Setup != nil {
		if err := unit.Setup(env); err != nil {
			env.Logf("unit setup error: %v", err)
			return classify(err), err
		}
	}

	if err := unit.Run(env); err != nil {
		env.Logf("%s: %v", unit.Name, err)
		return classify(err), err
	}
	return types.OutcomePass, nil
}

// runHook invokes a lifecycle hook, converting a panic into an error.
func (r *Runner) runHook(env *types.Env, hook types.Hook) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return hook(env)
}

// skipAllUnits records a skip for every selected unit after a setup failure.
func (r *Runner) skipAllUnits(suite *types.Suite, result *types.SuiteResult) {
	for _, unit := range suite.Units {
		if !r.selected(unit.Name) {
			continue
		}
		result.Tally.Record(types.OutcomeSkip)
		result.Units = append(result.Units, types.UnitResult{
			Name:    unit.Name,
			Outcome: types.OutcomeSkip,
			Err:     fmt.Errorf("suite setup failed: %w", result.SetupErr),
		})
		r.cfg.Sink.Console("Test skipped : %s [setup failed]", unit.Name)
		metrics.RecordUnit(r.cfg.CampaignID, suite.Name, unit.Name, types.OutcomeSkip)
	}
}

// selected applies the include/exclude filters to a unit name. Exclusion
// always wins when a name appears in both lists.
func (r *Runner) selected(name string) bool {
	if slices.Contains(r.cfg.Exclude, name) {
		return false
	}
	if slices.Contains(r.cfg.Include, types.AllSentinel) {
		return true
	}
	return slices.Contains(r.cfg.Include, name)
}

func (r *Runner) stopped(ctx context.Context) bool {
	return r.cfg.Stop.Stopped() || ctx.Err() != nil
}

func (r *Runner) newEnv(ctx context.Context) *types.Env {
	return &types.Env{
		Ctx:       ctx,
		Log:       r.cfg.Log,
		Output:    r.cfg.Sink.Writer(),
		Verbosity: r.cfg.Verbosity,
		QuickOnly: r.cfg.QuickOnly,
	}
}

// classify maps a unit or hook error to its outcome: a skip signal counts
// as skipped, anything else is a failure.
func classify(err error) types.Outcome {
	if errors.Is(err, types.ErrSkip) {
		return types.OutcomeSkip
	}
	return types.OutcomeFail
}
