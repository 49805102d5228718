package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/geom"
	"github.com/medvol/ctprep/pkg/transform"
	"github.com/medvol/ctprep/pkg/volume"
)

func fillLinear100(shape volume.Shape) volume.Volume {
	v := volume.New(make([]float32, shape[0]*shape[1]*shape[2]), shape, volume.Vec3{1, 2, 3}, volume.Vec3{}, geom.Identity())
	for d := 0; d < shape[0]; d++ {
		for h := 0; h < shape[1]; h++ {
			for w := 0; w < shape[2]; w++ {
				v.Data[v.Index(d, h, w)] = float32(100*d + 10*h + w)
			}
		}
	}
	return v
}

// S6: transpose (0,1,2)->(2,1,0) on shape (2,3,4).
func TestTransposeSeedS6(t *testing.T) {
	shape := volume.Shape{2, 3, 4}
	v := fillLinear100(shape)

	out := transform.Transpose(v, [3]int{2, 1, 0})

	assert.Equal(t, volume.Shape{4, 3, 2}, out.Shape)
	assert.Equal(t, volume.Vec3{v.Spacing[2], v.Spacing[1], v.Spacing[0]}, out.Spacing)

	for d := 0; d < shape[0]; d++ {
		for h := 0; h < shape[1]; h++ {
			for w := 0; w < shape[2]; w++ {
				assert.Equal(t, v.At(d, h, w), out.At(w, h, d))
			}
		}
	}
}

// Universal property 3: identity transpose yields byte-equal data.
func TestTransposeIdentityYieldsEqualData(t *testing.T) {
	v := fillLinear100(volume.Shape{3, 4, 5})
	out := transform.Transpose(v, [3]int{0, 1, 2})
	assert.Equal(t, v.Data, out.Data)
	assert.Equal(t, v.Spacing, out.Spacing)
}

// Universal property 1: transpose(transpose(V,pi),pi^-1) == V.
func TestTransposeRoundTripsThroughInverse(t *testing.T) {
	v := fillLinear100(volume.Shape{2, 3, 4})
	perm := [3]int{2, 0, 1}
	var inv [3]int
	for i, p := range perm {
		inv[p] = i
	}

	once := transform.Transpose(v, perm)
	back := transform.Transpose(once, inv)

	assert.Equal(t, v.Data, back.Data)
	assert.Equal(t, v.Shape, back.Shape)
	assert.Equal(t, v.Spacing, back.Spacing)
}

func TestTransposeInvalidPermutationPanics(t *testing.T) {
	v := fillLinear100(volume.Shape{2, 2, 2})
	defer func() {
		r := recover()
		if assert.NotNil(t, r) {
			iv, ok := r.(*ctxerr.InvariantViolation)
			if assert.True(t, ok) {
				assert.Equal(t, ctxerr.InvalidPermutation, iv.Kind)
			}
		}
	}()
	transform.Transpose(v, [3]int{0, 0, 2})
}
