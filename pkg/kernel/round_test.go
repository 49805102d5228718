package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medvol/ctprep/pkg/kernel"
)

func TestRoundHalfEvenTiesToEven(t *testing.T) {
	assert.Equal(t, 2, kernel.RoundHalfEven(2.5))
	assert.Equal(t, 4, kernel.RoundHalfEven(3.5))
	assert.Equal(t, -2, kernel.RoundHalfEven(-2.5))
	assert.Equal(t, 0, kernel.RoundHalfEven(-0.5))
}

func TestRoundHalfEvenNonTie(t *testing.T) {
	assert.Equal(t, 3, kernel.RoundHalfEven(2.6))
	assert.Equal(t, 2, kernel.RoundHalfEven(2.4))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3, kernel.RoundHalfAwayFromZero(2.5))
	assert.Equal(t, -3, kernel.RoundHalfAwayFromZero(-2.5))
	assert.Equal(t, 4, kernel.RoundHalfAwayFromZero(3.5))
}

func TestTargetShapeDimClampsToOne(t *testing.T) {
	assert.Equal(t, 1, kernel.TargetShapeDim(1, 0.01))
	assert.Equal(t, 1, kernel.TargetShapeDim(10, 0.001))
}

func TestTargetShapeDimS4(t *testing.T) {
	// S4: shape 32, spacing 1.0 -> target 2.0, scale 0.5, endpoints align
	// via (D-1)*scale separately in Resample; TargetShapeDim itself just
	// rounds shape*scale.
	assert.Equal(t, 16, kernel.TargetShapeDim(32, 0.5))
}
