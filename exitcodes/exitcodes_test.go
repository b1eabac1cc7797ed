package exitcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFailures(t *testing.T) {
	tests := []struct {
		name   string
		failed int
		want   int
	}{
		{name: "no failures", failed: 0, want: Success},
		{name: "one failure", failed: 1, want: 1},
		{name: "at cap", failed: FailureCap, want: FailureCap},
		{name: "over cap", failed: 500, want: FailureCap},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromFailures(tc.failed))
		})
	}
}

func TestReservedCodesDistinct(t *testing.T) {
	// Failure-count exits must never collide with the reserved codes.
	for _, reserved := range []int{ConfigErr, EnvironmentFailure, Interrupted} {
		assert.Greater(t, reserved, FailureCap)
	}
}
