package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyRecord(t *testing.T) {
	var tally Tally
	tally.Record(OutcomePass)
	tally.Record(OutcomePass)
	tally.Record(OutcomeFail)
	tally.Record(OutcomeSkip)

	assert.Equal(t, Tally{Total: 4, Passed: 2, Failed: 1, Skipped: 1}, tally)
}

func TestTallyMerge(t *testing.T) {
	a := Tally{Total: 3, Passed: 2, Failed: 1}
	b := Tally{Total: 2, Passed: 1, Skipped: 1}
	a.Merge(b)

	assert.Equal(t, Tally{Total: 5, Passed: 3, Failed: 1, Skipped: 1}, a)
}

func TestSuiteResultStatus(t *testing.T) {
	tests := []struct {
		name   string
		tally  Tally
		status Outcome
	}{
		{name: "all passed", tally: Tally{Total: 2, Passed: 2}, status: OutcomePass},
		{name: "any failure wins", tally: Tally{Total: 3, Passed: 2, Failed: 1}, status: OutcomeFail},
		{name: "only skips", tally: Tally{Total: 2, Skipped: 2}, status: OutcomeSkip},
		{name: "passes and skips", tally: Tally{Total: 3, Passed: 1, Skipped: 2}, status: OutcomePass},
		{name: "empty suite", tally: Tally{}, status: OutcomePass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &SuiteResult{Tally: tt.tally}
			assert.Equal(t, tt.status, result.Status())
		})
	}
}

func TestSkipSignal(t *testing.T) {
	err := Skip("appliance has no %s module", "geoip")
	assert.True(t, errors.Is(err, ErrSkip))
	assert.Contains(t, err.Error(), "appliance has no geoip module")
}

func TestEnvSkipLong(t *testing.T) {
	env := &Env{QuickOnly: true}
	err := env.SkipLong()
	assert.True(t, errors.Is(err, ErrSkip))

	env.QuickOnly = false
	assert.NoError(t, env.SkipLong())
}
