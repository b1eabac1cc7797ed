package suites

import (
	"fmt"

	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

// NewReports builds the reports API suite.
func NewReports(tgt *target.Target) *types.Suite {
	return &types.Suite{
		Name:        "reports",
		Description: "exercises the reports query API",
		Units: []types.Unit{
			{
				Name: "sessions_query",
				Run: func(env *types.Env) error {
					queryID, err := tgt.API.CreateQuery(env.Ctx, target.ReportQuery{
						Table: "sessions",
						Limit: 10,
					})
					if err != nil {
						return fmt.Errorf("creating sessions query: %w", err)
					}
					rows, err := tgt.API.GetData(env.Ctx, queryID)
					if err != nil {
						return fmt.Errorf("fetching sessions query data: %w", err)
					}
					env.Logf("sessions query returned %d row(s)", len(rows))
					return nil
				},
			},
			{
				Name: "filtered_query",
				Run: func(env *types.Env) error {
					queryID, err := tgt.API.CreateQuery(env.Ctx, target.ReportQuery{
						Table:      "sessions",
						Columns:    []string{"ip_protocol", "client_address"},
						Conditions: map[string]any{"client_address": tgt.Profile.ClientHost},
						Limit:      10,
					})
					if err != nil {
						return fmt.Errorf("creating filtered query: %w", err)
					}
					rows, err := tgt.API.GetData(env.Ctx, queryID)
					if err != nil {
						return fmt.Errorf("fetching filtered query data: %w", err)
					}
					for _, row := range rows {
						if addr, ok := row["client_address"].(string); ok && addr != tgt.Profile.ClientHost {
							return fmt.Errorf("query condition not honored: got client %s", addr)
						}
					}
					return nil
				},
			},
		},
	}
}
