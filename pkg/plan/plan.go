// Package plan decodes the JSON plan/fingerprint record the pipeline
// driver receives (spec.md §6). Parsing itself is the one ambient concern
// spec.md explicitly scopes out of the core ("JSON plan/fingerprint
// parsing" — non-goal), but the wire shape is still part of the external
// interface this module has to agree with, so it lives here rather than in
// pkg/transform.
package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/transform"
)

// ResamplingKwargs mirrors resampling_fn_data_kwargs / resampling_fn_seg_kwargs.
type ResamplingKwargs struct {
	IsSeg          bool  `json:"is_seg"`
	Order          int   `json:"order"`
	OrderZ         int   `json:"order_z"`
	ForceSeparateZ *bool `json:"force_separate_z"`
}

// IntensityProperties is one entry of foreground_intensity_properties,
// keyed by channel index as a string.
type IntensityProperties struct {
	Mean           float64 `json:"mean"`
	Std            float64 `json:"std"`
	Percentile00_5 float64 `json:"percentile_00_5"`
	Percentile99_5 float64 `json:"percentile_99_5"`
}

// PreprocessingParameters is the plan record the pipeline driver receives
// (spec.md §3/§6). Field names match the wire JSON exactly.
type PreprocessingParameters struct {
	ConfigurationName             string                         `json:"configuration_name"`
	TargetSpacing                 [3]float64                     `json:"target_spacing"`
	PatchSize                     [3]int                         `json:"patch_size"`
	TransposeForward              [3]int                         `json:"transpose_forward"`
	TransposeBackward             [3]int                         `json:"transpose_backward"`
	NormalizationSchemes          []string                       `json:"normalization_schemes"`
	UseMaskForNorm                []bool                         `json:"use_mask_for_norm"`
	ForegroundIntensityProperties map[string]IntensityProperties `json:"foreground_intensity_properties"`
	ResamplingFnDataKwargs        ResamplingKwargs               `json:"resampling_fn_data_kwargs"`
	ResamplingFnSegKwargs         ResamplingKwargs               `json:"resampling_fn_seg_kwargs"`
	AnisotropyThreshold           float64                        `json:"anisotropy_threshold"`
	OriginalSpacing               [3]float64                     `json:"original_spacing"`
	OriginalMedianShape           [3]int                         `json:"original_median_shape"`
}

// Decode parses a PreprocessingParameters from raw JSON bytes.
func Decode(raw []byte) (*PreprocessingParameters, error) {
	var p PreprocessingParameters
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("plan: decode: %w", err)
	}
	return &p, nil
}

// LoadFile reads and decodes a plan record from path.
func LoadFile(path string) (*PreprocessingParameters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}
	return Decode(raw)
}

// ctNormalizationScheme is the only normalization scheme this core
// implements (spec.md §6).
const ctNormalizationScheme = "CTNormalization"

// ExtractCTNormalization pulls CTNormalizationProperties for channel 0 out
// of the plan, per spec.md §6: mean<-mean, std<-std, lower<-percentile_00_5,
// upper<-percentile_99_5. Returns ctxerr.UnsupportedNormalizationScheme if
// channel 0's scheme is not "CTNormalization".
func (p *PreprocessingParameters) ExtractCTNormalization() (transform.CTNormalizationProperties, error) {
	if len(p.NormalizationSchemes) == 0 || p.NormalizationSchemes[0] != ctNormalizationScheme {
		scheme := "<none>"
		if len(p.NormalizationSchemes) > 0 {
			scheme = p.NormalizationSchemes[0]
		}
		return transform.CTNormalizationProperties{}, &ctxerr.UnsupportedNormalizationScheme{Scheme: scheme}
	}

	props, ok := p.ForegroundIntensityProperties["0"]
	if !ok {
		return transform.CTNormalizationProperties{}, fmt.Errorf("plan: foreground_intensity_properties missing channel \"0\"")
	}

	return transform.CTNormalizationProperties{
		Mean:  props.Mean,
		Std:   props.Std,
		Lower: props.Percentile00_5,
		Upper: props.Percentile99_5,
	}, nil
}

// ResampleOptions builds transform.ResampleOptions for the data path from
// the plan's resampling_fn_data_kwargs and anisotropy_threshold.
func (p *PreprocessingParameters) ResampleOptions() transform.ResampleOptions {
	return transform.ResampleOptions{
		Order:               p.ResamplingFnDataKwargs.Order,
		OrderZ:              p.ResamplingFnDataKwargs.OrderZ,
		ForceSeparateZ:      p.ResamplingFnDataKwargs.ForceSeparateZ,
		AnisotropyThreshold: p.AnisotropyThreshold,
	}
}
