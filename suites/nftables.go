package suites

import (
	"fmt"
	"strings"

	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

// harnessTable is the throwaway nftables table the suite creates and tears
// down; it never touches the appliance's production ruleset.
const harnessTable = "gauntlet_harness"

// NewNftables builds the packet-filter CLI suite.
func NewNftables(tgt *target.Target) *types.Suite {
	return &types.Suite{
		Name:        "nftables",
		Description: "exercises the packet-filter ruleset via the CLI",
		Teardown: func(env *types.Env) error {
			// Best effort cleanup; the table may not exist if the units
			// were filtered out.
			_, _ = tgt.Shell.Filter(env.Ctx, "delete", "table", "inet", harnessTable)
			return nil
		},
		Units: []types.Unit{
			{
				Name: "list_ruleset",
				Run: func(env *types.Env) error {
					out, err := tgt.Shell.Filter(env.Ctx, "list", "tables")
					if err != nil {
						return fmt.Errorf("listing tables: %w", err)
					}
					env.Logf("tables:\n%s", out)
					return nil
				},
			},
			{
				Name: "add_table",
				Run: func(env *types.Env) error {
					if _, err := tgt.Shell.Filter(env.Ctx, "add", "table", "inet", harnessTable); err != nil {
						return fmt.Errorf("adding table: %w", err)
					}
					out, err := tgt.Shell.Filter(env.Ctx, "list", "tables")
					if err != nil {
						return err
					}
					if !strings.Contains(out, harnessTable) {
						return fmt.Errorf("table %s missing from ruleset after add", harnessTable)
					}
					return nil
				},
			},
			{
				Name: "flush_table",
				Run: func(env *types.Env) error {
					if _, err := tgt.Shell.Filter(env.Ctx, "flush", "table", "inet", harnessTable); err != nil {
						return fmt.Errorf("flushing table: %w", err)
					}
					return nil
				},
			},
			{
				Name: "block_client_traffic",
				Run: func(env *types.Env) error {
					// Generates real traffic from the client host; slow.
					if err := env.SkipLong(); err != nil {
						return err
					}
					chain := []string{"add", "chain", "inet", harnessTable, "forward",
						"{", "type", "filter", "hook", "forward", "priority", "0", ";", "}"}
					if _, err := tgt.Shell.Filter(env.Ctx, chain...); err != nil {
						return fmt.Errorf("adding forward chain: %w", err)
					}
					rule := []string{"add", "rule", "inet", harnessTable, "forward",
						"ip", "saddr", tgt.Profile.ClientHost, "drop"}
					if _, err := tgt.Shell.Filter(env.Ctx, rule...); err != nil {
						return fmt.Errorf("adding drop rule: %w", err)
					}

					// With the drop rule in place the client must not be able
					// to reach the outside.
					if out, err := tgt.Shell.RunOnClient(env.Ctx, "curl -m 5 -s -o /dev/null http://example.com/"); err == nil {
						return fmt.Errorf("client traffic was not blocked: %s", out)
					}

					if _, err := tgt.Shell.Filter(env.Ctx, "flush", "table", "inet", harnessTable); err != nil {
						return fmt.Errorf("removing drop rule: %w", err)
					}
					if _, err := tgt.Shell.RunOnClient(env.Ctx, "curl -m 15 -s -o /dev/null http://example.com/"); err != nil {
						return fmt.Errorf("client traffic still blocked after flush: %w", err)
					}
					return nil
				},
			},
		},
	}
}
