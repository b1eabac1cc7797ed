// Package gauntlet drives integration-test campaigns against a packet-filter
// appliance: it resolves the configured suite list against a registry, runs
// each suite through the suite runner, repeats the pass per policy, and
// reports an aggregate summary.
package gauntlet

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fwlab/gauntlet/interrupt"
	"github.com/fwlab/gauntlet/logging"
	"github.com/fwlab/gauntlet/metrics"
	"github.com/fwlab/gauntlet/registry"
	"github.com/fwlab/gauntlet/runner"
	"github.com/fwlab/gauntlet/types"
)

// Phase is the campaign controller's lifecycle state. The stop token is an
// orthogonal condition settable at any time by interrupt or fail-fast.
type Phase int

const (
	PhasePreparing Phase = iota
	PhaseRunning
	PhaseRepeating
	PhaseDone
)

// Campaign is the top-level driver for one (possibly repeated) execution of
// the selected suite list.
type Campaign struct {
	cfg      *Config
	registry *registry.Registry
	sink     *logging.Sink
	stop     *interrupt.Token
	runner   *runner.Runner

	id       string
	phase    Phase
	tally    types.Tally
	results  []*types.SuiteResult
	duration time.Duration
}

// NewCampaign wires a campaign against an already populated registry.
func NewCampaign(cfg *Config, reg *registry.Registry, sink *logging.Sink, stop *interrupt.Token) (*Campaign, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("log sink is required")
	}
	if stop == nil {
		stop = interrupt.NewToken()
	}

	id := uuid.New().String()
	r, err := runner.New(runner.Config{
		Log:        cfg.Log,
		Sink:       sink,
		Stop:       stop,
		FailFast:   cfg.FailFast,
		QuickOnly:  cfg.QuickOnly,
		Verbosity:  cfg.Verbosity,
		Include:    cfg.Tests,
		Exclude:    cfg.ExcludeTests,
		CampaignID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}

	return &Campaign{
		cfg:      cfg,
		registry: reg,
		sink:     sink,
		stop:     stop,
		runner:   r,
		id:       id,
		phase:    PhasePreparing,
	}, nil
}

// ID returns the campaign's run identifier.
func (c *Campaign) ID() string { return c.id }

// Phase returns the controller's current lifecycle state.
func (c *Campaign) Phase() Phase { return c.phase }

// Tally returns the aggregate counts accumulated so far.
func (c *Campaign) Tally() types.Tally { return c.tally }

// Results returns the per-suite results in execution order.
func (c *Campaign) Results() []*types.SuiteResult { return c.results }

// Run executes the full campaign and returns nil on success, a ConfigError
// for unresolvable configuration, an EnvironmentError when the mandatory
// sanity suite fails, or a CampaignError carrying the cumulative failure
// count.
func (c *Campaign) Run(ctx context.Context) error {
	c.phase = PhasePreparing
	c.cfg.Log.Debug("Campaign starting", "id", c.id, "suites", c.cfg.Suites, "failFast", c.cfg.FailFast, "repeat", c.cfg.Repeat)

	runList, err := c.resolveSuites()
	if err != nil {
		return NewConfigError(err)
	}

	start := time.Now()

	// The environment sanity suite runs first and its failure is always
	// fatal, irrespective of the fail-fast setting. An inconsistent test
	// environment would make every later result meaningless.
	if err := c.runEnvironmentSuite(ctx); err != nil {
		c.duration = time.Since(start)
		return err
	}

	remaining := c.cfg.RepeatCount
	for !c.stop.Stopped() {
		c.phase = PhaseRunning
		c.runPass(ctx, runList)

		if c.stop.Stopped() || !c.cfg.Repeat {
			break
		}
		c.phase = PhaseRepeating
		if c.cfg.RepeatCount > 0 {
			remaining--
			if remaining < 1 {
				break
			}
		}
	}

	c.phase = PhaseDone
	c.duration = time.Since(start)
	c.printSummary()
	metrics.RecordCampaign(c.id, c.overallStatus(), c.tally, c.duration)
	c.cfg.Log.Info("Campaign finished", "id", c.id,
		"total", c.tally.Total, "passed", c.tally.Passed,
		"failed", c.tally.Failed, "skipped", c.tally.Skipped,
		"elapsed", c.duration)

	if c.tally.Failed > 0 {
		return NewCampaignError(c.tally.Failed)
	}
	return nil
}

// resolveSuites expands the "all" sentinel against the registry, validates
// every explicitly named suite, and removes the excluded ones. Order is
// preserved: configuration order for explicit lists, sorted registry order
// for "all".
func (c *Campaign) resolveSuites() ([]string, error) {
	var names []string
	if slices.Contains(c.cfg.Suites, types.AllSentinel) {
		names = c.registry.AllNames()
	} else {
		for _, name := range c.cfg.Suites {
			if _, ok := c.registry.Get(name); !ok {
				return nil, fmt.Errorf("unable to find test suite %q", name)
			}
			names = append(names, name)
		}
	}

	resolved := make([]string, 0, len(names))
	for _, name := range names {
		if slices.Contains(c.cfg.ExcludeSuites, name) {
			continue
		}
		resolved = append(resolved, name)
	}
	return resolved, nil
}

// environmentSelected reports whether the mandatory sanity suite should run.
func (c *Campaign) environmentSelected() bool {
	if slices.Contains(c.cfg.ExcludeSuites, types.EnvironmentSuiteName) {
		return false
	}
	return slices.Contains(c.cfg.Suites, types.AllSentinel) ||
		slices.Contains(c.cfg.Suites, types.EnvironmentSuiteName)
}

// runEnvironmentSuite runs the pre-flight checks. Any failure, including a
// failing setup hook, aborts the campaign with a distinguished error.
func (c *Campaign) runEnvironmentSuite(ctx context.Context) error {
	if !c.environmentSelected() {
		return nil
	}
	suite, ok := c.registry.Get(types.EnvironmentSuiteName)
	if !ok {
		return nil
	}

	result := c.runner.RunSuite(ctx, suite)
	c.tally.Merge(result.Tally)
	c.results = append(c.results, result)

	if result.Tally.Failed > 0 || result.SetupErr != nil {
		c.sink.Console("The test environment is not configured correctly. Aborting...")
		failed := result.Tally.Failed
		if failed == 0 {
			failed = 1
		}
		return NewEnvironmentError(failed)
	}
	return nil
}

// runPass runs one full pass over the resolved suite list, accumulating
// the aggregate tally. The sanity suite is skipped by name here; it already
// ran during preparation.
func (c *Campaign) runPass(ctx context.Context, runList []string) {
	for _, name := range runList {
		if c.stop.Stopped() {
			return
		}
		if name == types.EnvironmentSuiteName {
			continue
		}
		suite, ok := c.registry.Get(name)
		if !ok {
			// Resolution already validated the list; a vanished suite
			// would mean the registry mutated mid-run.
			c.cfg.Log.Error("Suite disappeared from registry", "suite", name)
			continue
		}
		result := c.runner.RunSuite(ctx, suite)
		c.tally.Merge(result.Tally)
		c.results = append(c.results, result)
	}
}

func (c *Campaign) overallStatus() types.Outcome {
	switch {
	case c.tally.Failed > 0:
		return types.OutcomeFail
	case c.tally.Total == 0 || (c.tally.Passed == 0 && c.tally.Skipped > 0):
		return types.OutcomeSkip
	default:
		return types.OutcomePass
	}
}
