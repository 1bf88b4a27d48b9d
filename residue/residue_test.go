package residue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularDistance(t *testing.T) {
	tests := []struct {
		name     string
		gamma    float64
		c        float64
		expected float64
	}{
		{"ExactMultiple", 10, 2.5, 0},
		{"JustAbove", 10.1, 2.5, 0.1},
		{"JustBelow", 9.9, 2.5, 0.1},
		{"Midpoint", 1.25, 2.5, 1.25},
		{"SmallConstant", 14.134725, 0.007297, 14.134725 - 1937*0.007297},
		{"LessThanConstant", 0.3, 2.5, 0.3},
		{"NearWrap", 2.4, 2.5, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CircularDistance(tt.gamma, tt.c)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCircularDistanceRange(t *testing.T) {
	// Distance is always within [0, c/2].
	c := 0.5772156649
	for gamma := 14.0; gamma < 100; gamma += 0.37 {
		d := CircularDistance(gamma, c)
		require.GreaterOrEqual(t, d, 0.0)
		require.LessOrEqual(t, d, c/2+1e-12)
	}
}

func TestHit(t *testing.T) {
	c := 1 / 137.035999084

	tests := []struct {
		name  string
		gamma float64
		tol   float64
		mode  Mode
		want  bool
	}{
		{"AbsoluteHit", 100 * c, 1e-5, Absolute, true},
		{"AbsoluteMiss", 100*c + 1e-3, 1e-5, Absolute, false},
		{"RelativeHit", 100*c + c*1e-9, 1e-8, Relative, true},
		{"RelativeMiss", 100*c + c*1e-7, 1e-8, Relative, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hit(tt.gamma, c, tt.tol, tt.mode))
		})
	}
}

func TestHitProbability(t *testing.T) {
	assert.InDelta(t, 2*1e-5/0.5, HitProbability(0.5, 1e-5, Absolute), 1e-15)
	assert.InDelta(t, 2e-8, HitProbability(0.5, 1e-8, Relative), 1e-20)
	// Clamped when the tolerance window covers the whole period.
	assert.Equal(t, 1.0, HitProbability(1e-6, 1.0, Absolute))
}

func TestValidation(t *testing.T) {
	assert.True(t, ValidConstant(0.007297))
	assert.False(t, ValidConstant(0))
	assert.False(t, ValidConstant(-1))
	assert.False(t, ValidConstant(math.Inf(1)))
	assert.False(t, ValidConstant(math.NaN()))

	assert.True(t, ValidTolerance(1e-9))
	assert.False(t, ValidTolerance(0))
	assert.False(t, ValidTolerance(math.NaN()))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "absolute", Absolute.String())
	assert.Equal(t, "relative", Relative.String())
}
