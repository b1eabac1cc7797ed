package suites

import (
	"github.com/fwlab/gauntlet/registry"
	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

// RegisterAll registers every built-in suite against the given target.
func RegisterAll(reg *registry.Registry, tgt *target.Target) error {
	all := []*types.Suite{
		NewEnvironment(tgt),
		NewSettings(tgt),
		NewNftables(tgt),
		NewDictionary(tgt),
		NewReports(tgt),
	}
	for _, suite := range all {
		if err := reg.Register(suite.Name, suite); err != nil {
			return err
		}
	}
	return nil
}
