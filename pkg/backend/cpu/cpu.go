// Package cpu implements backend.Backend directly over pkg/transform: the
// CPU core is the only backend this module builds out fully (spec.md §5:
// "the CPU core is single-threaded at the interface level... each
// transform is a pure function"). It never produces a ctxerr.GpuBackendError;
// invariant violations still panic, per spec.md §7.
package cpu

import (
	"github.com/medvol/ctprep/pkg/transform"
	"github.com/medvol/ctprep/pkg/volume"
)

// Backend is the CPU implementation of backend.Backend.
type Backend struct{}

// New returns a CPU Backend. There is no state to construct: every stage
// is a pure function over its Volume argument.
func New() Backend {
	return Backend{}
}

func (Backend) Crop(v volume.Volume) (volume.Volume, volume.BoundingBox, error) {
	out, box := transform.Crop(v)
	return out, box, nil
}

func (Backend) Transpose(v volume.Volume, perm [3]int) (volume.Volume, error) {
	return transform.Transpose(v, perm), nil
}

func (Backend) Resample(v volume.Volume, targetSpacing volume.Vec3, opts transform.ResampleOptions) (volume.Volume, error) {
	return transform.Resample(v, targetSpacing, opts), nil
}

func (Backend) Normalize(v volume.Volume, props transform.CTNormalizationProperties) (volume.Volume, error) {
	return transform.CTNormalize(v, props), nil
}
