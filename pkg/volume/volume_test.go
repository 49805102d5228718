package volume_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/geom"
	"github.com/medvol/ctprep/pkg/volume"
)

func makeLinear(shape volume.Shape) volume.Volume {
	n := shape[0] * shape[1] * shape[2]
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)
	}
	return volume.New(data, shape, volume.Vec3{1, 1, 1}, volume.Vec3{}, geom.Identity())
}

func TestIndexIsRowMajorStrideOneInW(t *testing.T) {
	v := makeLinear(volume.Shape{2, 3, 4})
	assert.Equal(t, float32(0), v.At(0, 0, 0))
	assert.Equal(t, float32(1), v.At(0, 0, 1))
	assert.Equal(t, float32(4), v.At(0, 1, 0))
	assert.Equal(t, float32(12), v.At(1, 0, 0))
}

func TestValidatePanicsOnShapeDataMismatch(t *testing.T) {
	defer func() {
		r := recover()
		if assert.NotNil(t, r) {
			iv, ok := r.(*ctxerr.InvariantViolation)
			if assert.True(t, ok) {
				assert.Equal(t, ctxerr.ShapeMismatch, iv.Kind)
			}
		}
	}()
	volume.New(make([]float32, 5), volume.Shape{2, 2, 2}, volume.Vec3{1, 1, 1}, volume.Vec3{}, geom.Identity())
}

func TestValidatePanicsOnNonPositiveSpacing(t *testing.T) {
	defer func() {
		r := recover()
		if assert.NotNil(t, r) {
			iv, ok := r.(*ctxerr.InvariantViolation)
			if assert.True(t, ok) {
				assert.Equal(t, ctxerr.ShapeMismatch, iv.Kind)
			}
		}
	}()
	volume.New(make([]float32, 8), volume.Shape{2, 2, 2}, volume.Vec3{1, 0, 1}, volume.Vec3{}, geom.Identity())
}

func TestCloneIsIndependentOfSource(t *testing.T) {
	v := makeLinear(volume.Shape{2, 2, 2})
	clone := v.Clone()
	clone.Data[0] = 999
	assert.NotEqual(t, v.Data[0], clone.Data[0])
}

func TestWithDataCarriesMetadataForward(t *testing.T) {
	v := makeLinear(volume.Shape{2, 2, 2})
	box := volume.BoundingBox{Start: volume.Shape{0, 0, 0}, End: volume.Shape{2, 2, 2}}
	v.BBox = &box

	out := v.WithData(make([]float32, 27), volume.Shape{3, 3, 3})
	assert.Equal(t, v.Spacing, out.Spacing)
	assert.Equal(t, v.Origin, out.Origin)
	assert.Same(t, v.BBox, out.BBox)
}

func TestBoundingBoxSize(t *testing.T) {
	b := volume.BoundingBox{Start: volume.Shape{1, 2, 3}, End: volume.Shape{4, 5, 6}}
	assert.Equal(t, volume.Shape{3, 3, 3}, b.Size())
}
