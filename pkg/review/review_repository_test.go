package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.0, 4.0},
		{4.5, 4.5},
		{4.625, 4.63},
		{4.624, 4.62},
		{1.0 / 3.0, 0.33},
		{5.0 / 3.0, 1.67},
		{14.0 / 3.0, 4.67},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, round2(tc.in), 1e-9, "input %v", tc.in)
	}
}
