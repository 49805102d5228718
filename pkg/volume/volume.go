// Package volume defines the Volume value type that flows through every
// stage of the CT preprocessing pipeline: an immutable-by-convention record
// of voxels plus the physical metadata needed to place them in space.
package volume

import (
	"math"

	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/geom"
)

// Shape is the (D,H,W) triple of a Volume: depth (slices), height (rows),
// width (columns).
type Shape [3]int

// Vec3 is a (z,y,x)-ordered triple of physical reals — spacing or origin.
type Vec3 [3]float64

// BoundingBox is a half-open axis-aligned box: Start is inclusive, End is
// exclusive, per axis in (D,H,W) order.
type BoundingBox struct {
	Start Shape
	End   Shape
}

// Size returns End-Start componentwise.
func (b BoundingBox) Size() Shape {
	return Shape{b.End[0] - b.Start[0], b.End[1] - b.Start[1], b.End[2] - b.Start[2]}
}

// Volume is the one value that flows through every pipeline stage. Each
// stage takes a Volume by value semantics (never mutates its input's data
// buffer in place) and returns a fresh Volume.
type Volume struct {
	Data        []float32
	Shape       Shape
	Spacing     Vec3 // mm, (z,y,x) order
	Origin      Vec3 // mm, world coordinates of voxel (0,0,0)
	Orientation geom.Orientation
	BBox        *BoundingBox // non-nil iff a prior Crop recorded its inverse
}

// New builds a Volume, panicking with ctxerr.ShapeMismatch if data's length
// does not match shape, or spacing is not strictly positive and finite.
func New(data []float32, shape Shape, spacing, origin Vec3, orientation geom.Orientation) Volume {
	v := Volume{Data: data, Shape: shape, Spacing: spacing, Origin: origin, Orientation: orientation}
	v.Validate()
	return v
}

// Validate enforces the invariants spec.md §3 requires to hold at every
// stage boundary. It panics (spec.md §7: "programmer error; fail fast")
// rather than returning an error, matching the CPU core's fail-fast
// contract for invariant violations.
func (v Volume) Validate() {
	d, h, w := v.Shape[0], v.Shape[1], v.Shape[2]
	if d < 1 || h < 1 || w < 1 {
		ctxerr.Raise(ctxerr.ShapeMismatch, "shape components must be >= 1, got %v", v.Shape)
	}
	want := d * h * w
	if len(v.Data) != want {
		ctxerr.Raise(ctxerr.ShapeMismatch, "len(data)=%d does not match shape %v (want %d)", len(v.Data), v.Shape, want)
	}
	for i, s := range v.Spacing {
		if !(s > 0) || math.IsInf(s, 0) || math.IsNaN(s) {
			ctxerr.Raise(ctxerr.ShapeMismatch, "spacing[%d]=%v must be strictly positive and finite", i, s)
		}
	}
}

// NumVoxels returns D*H*W.
func (v Volume) NumVoxels() int {
	return v.Shape[0] * v.Shape[1] * v.Shape[2]
}

// Index returns the flat row-major offset of voxel (d,h,w); stride in W is 1.
func (v Volume) Index(d, h, w int) int {
	return (d*v.Shape[1]+h)*v.Shape[2] + w
}

// At returns the voxel value at (d,h,w).
func (v Volume) At(d, h, w int) float32 {
	return v.Data[v.Index(d, h, w)]
}

// WithData returns a shallow copy of v with its Data buffer swapped out and
// shape updated; metadata (spacing/origin/orientation/bbox) is carried over
// verbatim. Callers that need a different bbox or spacing set it themselves
// on the returned value.
func (v Volume) WithData(data []float32, shape Shape) Volume {
	out := v
	out.Data = data
	out.Shape = shape
	return out
}

// Clone deep-copies the data buffer; metadata is copied by value already.
func (v Volume) Clone() Volume {
	data := make([]float32, len(v.Data))
	copy(data, v.Data)
	out := v
	out.Data = data
	return out
}
