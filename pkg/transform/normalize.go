package transform

import "github.com/medvol/ctprep/pkg/volume"

// CTNormalizationProperties holds the clipped-intensity-window and z-score
// statistics a plan's fingerprint supplies for CT normalization (spec.md
// §3/§4.4).
type CTNormalizationProperties struct {
	Mean  float64
	Std   float64
	Lower float64
	Upper float64
}

// minStd is the floor CTNormalize clamps Std to, per spec.md §3/§4.4.
const minStd = 1e-8

// CTNormalize clips every voxel to [props.Lower, props.Upper] (both bounds
// inclusive) then applies (v-mean)/max(std,1e-8), in that exact order, in
// float32 arithmetic (spec.md §4.4). Output shape, spacing, origin,
// orientation, and bbox are copied from the input.
func CTNormalize(v volume.Volume, props CTNormalizationProperties) volume.Volume {
	v.Validate()

	lower := float32(props.Lower)
	upper := float32(props.Upper)
	mean := float32(props.Mean)
	std := float32(props.Std)
	if std < minStd {
		std = minStd
	}

	data := make([]float32, len(v.Data))
	for i, x := range v.Data {
		if x < lower {
			x = lower
		} else if x > upper {
			x = upper
		}
		data[i] = (x - mean) / std
	}

	return v.WithData(data, v.Shape)
}
