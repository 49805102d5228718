// Package transform implements the four core volumetric transform stages:
// Crop, Transpose, Resample, and CTNormalize (spec.md §4). Each stage is a
// pure function from a volume.Volume (and stage-specific parameters) to a
// fresh volume.Volume; none mutates its input's data buffer.
package transform

import (
	"github.com/medvol/ctprep/pkg/kernel"
	"github.com/medvol/ctprep/pkg/volume"
)

// ResampleOptions configures Resample, mirroring the plan record's
// resampling_fn_data_kwargs (spec.md §6): Order is the in-plane/3D cubic
// spline order (only 3 is implemented, matching spec.md's scope), OrderZ
// selects nearest (0) or linear (1) through-plane interpolation for the
// separable path, ForceSeparateZ overrides the anisotropy decision when
// non-nil, and AnisotropyThreshold defaults to 3.0 when zero.
type ResampleOptions struct {
	Order               int
	OrderZ              int
	ForceSeparateZ      *bool
	AnisotropyThreshold float64
}

// DefaultAnisotropyThreshold is used when ResampleOptions.AnisotropyThreshold is zero.
const DefaultAnisotropyThreshold = 3.0

// aniso returns max(spacing)/min(spacing) (spec.md §4.3.2 "Anisotropy").
func aniso(spacing volume.Vec3) float64 {
	min, max := spacing[0], spacing[0]
	for _, s := range spacing {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return max / min
}

// useSeparateZ implements spec.md §4.3.2: if the caller supplies
// ForceSeparateZ, use it verbatim; otherwise use the separable path iff
// aniso(sourceSpacing) > threshold. The threshold is computed on the
// source spacing, not the target.
func useSeparateZ(sourceSpacing volume.Vec3, opts ResampleOptions) bool {
	if opts.ForceSeparateZ != nil {
		return *opts.ForceSeparateZ
	}
	threshold := opts.AnisotropyThreshold
	if threshold == 0 {
		threshold = DefaultAnisotropyThreshold
	}
	return aniso(sourceSpacing) > threshold
}

// targetShape computes spec.md §4.3.1's target shape: max(1,
// round_half_even(shape_i * spacing_i/target_i)) componentwise.
func targetShape(shape volume.Shape, spacing, target volume.Vec3) volume.Shape {
	var out volume.Shape
	for i := 0; i < 3; i++ {
		scale := spacing[i] / target[i]
		out[i] = kernel.TargetShapeDim(shape[i], scale)
	}
	return out
}

// Resample resamples v to targetSpacing (z,y,x mm), selecting the dense 3D
// cubic B-spline path or the anisotropic separable path per spec.md
// §4.3.2. It is the hardest component in the core (spec.md §2: Resample is
// ~45% of the implementation by line share).
func Resample(v volume.Volume, targetSpacing volume.Vec3, opts ResampleOptions) volume.Volume {
	v.Validate()

	out := targetShape(v.Shape, v.Spacing, targetSpacing)
	if out == v.Shape && v.Spacing == targetSpacing {
		result := v.Clone()
		result.Spacing = targetSpacing
		return result
	}

	var data []float32
	if useSeparateZ(v.Spacing, opts) {
		data = resampleSeparable(v, out, opts)
	} else {
		data = resampleDense3D(v, out)
	}

	result := v.WithData(data, out)
	result.Spacing = targetSpacing
	return result
}
