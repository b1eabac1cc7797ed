package suites

import (
	"fmt"

	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

const dictTable = "test_session"
const dictKey = "31337"

// NewDictionary builds the kernel dictionary suite: write, read back and
// delete entries through the /proc-style interface.
func NewDictionary(tgt *target.Target) *types.Suite {
	return &types.Suite{
		Name:        "dictionary",
		Description: "exercises the kernel key/value dictionary",
		Setup: func(env *types.Env) error {
			if !tgt.Dict.Available() {
				return fmt.Errorf("kernel dictionary interface not present")
			}
			return nil
		},
		Teardown: func(env *types.Env) error {
			return tgt.Dict.Delete(dictTable, dictKey)
		},
		Units: []types.Unit{
			{
				Name: "write_entry",
				Run: func(env *types.Env) error {
					return tgt.Dict.Set(dictTable, dictKey, "harness_field", "harness_value")
				},
			},
			{
				Name: "read_entry",
				Run: func(env *types.Env) error {
					fields, err := tgt.Dict.Get(dictTable, dictKey)
					if err != nil {
						return err
					}
					env.Logf("dictionary %s/%s: %v", dictTable, dictKey, fields)
					if fields["harness_field"] != "harness_value" {
						return fmt.Errorf("expected harness_field=harness_value, got %q", fields["harness_field"])
					}
					return nil
				},
			},
			{
				Name: "delete_entry",
				Run: func(env *types.Env) error {
					if err := tgt.Dict.Delete(dictTable, dictKey); err != nil {
						return err
					}
					fields, err := tgt.Dict.Get(dictTable, dictKey)
					if err == nil && fields["harness_field"] != "" {
						return fmt.Errorf("entry survived delete: %v", fields)
					}
					return nil
				},
			},
		},
	}
}
