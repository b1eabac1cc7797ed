package suites

import (
	"fmt"

	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

// scratchPath is the settings subtree the suite is allowed to scribble in.
var scratchPath = []string{"harness", "scratch"}

// NewSettings builds the settings API suite: fetch, round-trip and trim
// against a scratch subtree, restoring the full settings snapshot on
// teardown.
func NewSettings(tgt *target.Target) *types.Suite {
	var snapshot any

	return &types.Suite{
		Name:        "settings",
		Description: "exercises the settings API",
		Setup: func(env *types.Env) error {
			var err error
			snapshot, err = tgt.API.GetSettings(env.Ctx)
			if err != nil {
				return fmt.Errorf("snapshotting settings: %w", err)
			}
			return nil
		},
		Teardown: func(env *types.Env) error {
			if snapshot == nil {
				return nil
			}
			return tgt.API.SetSettings(env.Ctx, snapshot)
		},
		Units: []types.Unit{
			{
				Name: "get_settings",
				Run: func(env *types.Env) error {
					settings, err := tgt.API.GetSettings(env.Ctx)
					if err != nil {
						return err
					}
					root, ok := settings.(map[string]any)
					if !ok || len(root) == 0 {
						return fmt.Errorf("settings tree is empty")
					}
					env.Logf("settings tree has %d top-level keys", len(root))
					return nil
				},
			},
			{
				Name: "set_settings_roundtrip",
				Run: func(env *types.Env) error {
					sentinel := map[string]any{"marker": "gauntlet"}
					if err := tgt.API.SetSettings(env.Ctx, sentinel, scratchPath...); err != nil {
						return fmt.Errorf("writing scratch subtree: %w", err)
					}
					read, err := tgt.API.GetSettings(env.Ctx, scratchPath...)
					if err != nil {
						return fmt.Errorf("reading scratch subtree back: %w", err)
					}
					tree, ok := read.(map[string]any)
					if !ok || tree["marker"] != "gauntlet" {
						return fmt.Errorf("scratch subtree did not round-trip: got %v", read)
					}
					return nil
				},
			},
			{
				Name: "trim_settings",
				Run: func(env *types.Env) error {
					if err := tgt.API.TrimSettings(env.Ctx, scratchPath...); err != nil {
						return fmt.Errorf("trimming scratch subtree: %w", err)
					}
					read, err := tgt.API.GetSettings(env.Ctx, scratchPath...)
					if err == nil {
						if tree, ok := read.(map[string]any); ok && len(tree) > 0 {
							return fmt.Errorf("scratch subtree survived trim: %v", tree)
						}
					}
					return nil
				},
			},
		},
	}
}
