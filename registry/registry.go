package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/fwlab/gauntlet/types"
)

// Registry is the single source of truth mapping suite names to suites.
// It is an explicit object constructed at startup and passed by reference,
// so independent campaigns (and the harness's own tests) never share state.
// Registration happens once per suite before the campaign starts; during a
// run the registry is read-only.
type Registry struct {
	log    log.Logger
	mu     sync.RWMutex
	suites map[string]*types.Suite
}

// New creates an empty registry.
func New(logger log.Logger) *Registry {
	if logger == nil {
		logger = log.New()
	}
	return &Registry{
		log:    logger,
		suites: make(map[string]*types.Suite),
	}
}

// Register inserts a suite under its name. Re-registering a name replaces
// the previous suite; the replacement is deliberate (it supports overriding
// a stock suite) but always logged so it never happens silently.
func (r *Registry) Register(name string, suite *types.Suite) error {
	if name == "" {
		return fmt.Errorf("suite name is required")
	}
	if suite == nil {
		return fmt.Errorf("suite %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.suites[name]; exists {
		r.log.Warn("Replacing previously registered suite", "suite", name)
	}
	r.suites[name] = suite
	return nil
}

// Get returns the suite registered under name. Absence is a recoverable
// condition the caller reports as a configuration error, so Get never
// panics or errors; it just says not-found.
func (r *Registry) Get(name string) (*types.Suite, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	suite, ok := r.suites[name]
	return suite, ok
}

// AllNames returns every registered suite name in lexicographic order, so
// expanding the "all" selector yields a reproducible run list.
func (r *Registry) AllNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.suites))
	for name := range r.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered suites.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}
