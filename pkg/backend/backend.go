// Package backend defines the Backend capability set spec.md §9 calls for
// ("pattern: pluggable backend (CPU vs GPU)"): crop, transpose, resample,
// and normalize behind one interface, so the pipeline driver can select an
// implementation once at construction with no per-voxel runtime dispatch.
package backend

import (
	"github.com/medvol/ctprep/pkg/transform"
	"github.com/medvol/ctprep/pkg/volume"
)

// Backend is satisfied by both the CPU implementation (pkg/backend/cpu,
// fully built out) and the GPU implementation (pkg/backend/gpu, a stub
// conforming to the same contract per spec.md §9).
type Backend interface {
	Crop(v volume.Volume) (volume.Volume, volume.BoundingBox, error)
	Transpose(v volume.Volume, perm [3]int) (volume.Volume, error)
	Resample(v volume.Volume, targetSpacing volume.Vec3, opts transform.ResampleOptions) (volume.Volume, error)
	Normalize(v volume.Volume, props transform.CTNormalizationProperties) (volume.Volume, error)
}
