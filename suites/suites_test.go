package suites

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwlab/gauntlet/registry"
	"github.com/fwlab/gauntlet/target"
	"github.com/fwlab/gauntlet/types"
)

func testLogger() log.Logger {
	return log.NewLogger(log.DiscardHandler())
}

// fakeAppliance serves a minimal settings API backed by an in-memory tree.
func fakeAppliance(t *testing.T) *target.Target {
	t.Helper()
	store := map[string]any{
		"network":  map[string]any{"interfaces": []any{}},
		"firewall": map[string]any{},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/ping":
			w.Write([]byte(`{"pong": true}`))
		case r.URL.Path == "/api/settings/get_settings":
			json.NewEncoder(w).Encode(store)
		case r.URL.Path == "/api/settings/get_settings/harness/scratch":
			json.NewEncoder(w).Encode(store["harness/scratch"])
		case r.Method == http.MethodPost && r.URL.Path == "/api/settings/set_settings/harness/scratch":
			var value any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&value))
			store["harness/scratch"] = value
			w.Write([]byte(`{"result": "OK"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/settings/set_settings":
			w.Write([]byte(`{"result": "OK"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/settings/trim_settings/harness/scratch":
			delete(store, "harness/scratch")
			w.Write([]byte(`{"result": "OK"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	profile := target.DefaultProfile()
	profile.AdminURL = server.URL + "/api"
	profile.DictionaryDir = t.TempDir()
	return target.New(profile, testLogger())
}

func newEnv() *types.Env {
	return &types.Env{Ctx: context.Background(), Log: testLogger()}
}

func TestRegisterAll(t *testing.T) {
	reg := registry.New(testLogger())
	require.NoError(t, RegisterAll(reg, fakeAppliance(t)))

	assert.Equal(t, []string{
		"dictionary",
		types.EnvironmentSuiteName,
		"nftables",
		"reports",
		"settings",
	}, reg.AllNames())
}

func TestSettingsSuite(t *testing.T) {
	suite := NewSettings(fakeAppliance(t))
	env := newEnv()

	require.NoError(t, suite.Setup(env))
	for _, unit := range suite.Units {
		assert.NoError(t, unit.Run(env), unit.Name)
	}
	require.NoError(t, suite.Teardown(env))
}

func TestSettingsSuiteUnreachableAppliance(t *testing.T) {
	profile := target.DefaultProfile()
	profile.AdminURL = "http://127.0.0.1:1/api"
	suite := NewSettings(target.New(profile, testLogger()))

	require.Error(t, suite.Setup(newEnv()))
	require.NoError(t, suite.Teardown(newEnv()), "teardown without a snapshot is a no-op")
}

func TestNftablesLongUnitSkipsInQuickMode(t *testing.T) {
	suite := NewNftables(fakeAppliance(t))

	var blockUnit *types.Unit
	for i := range suite.Units {
		if suite.Units[i].Name == "block_client_traffic" {
			blockUnit = &suite.Units[i]
		}
	}
	require.NotNil(t, blockUnit)

	env := newEnv()
	env.QuickOnly = true
	err := blockUnit.Run(env)
	assert.ErrorIs(t, err, types.ErrSkip)
}
