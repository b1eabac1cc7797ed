package gauntlet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fwlab/gauntlet/types"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(0, 0), "empty campaign divides by nothing")
	assert.Equal(t, 50.0, percent(2, 4))
	assert.Equal(t, 100.0, percent(3, 3))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.0s", formatDuration(0))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "90.0s", formatDuration(90*time.Second))
}

func TestGetResultString(t *testing.T) {
	assert.Equal(t, "✓ pass", getResultString(types.OutcomePass))
	assert.Equal(t, "- skip", getResultString(types.OutcomeSkip))
	assert.Equal(t, "✗ fail", getResultString(types.OutcomeFail))
}
