package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/plan"
)

const sampleJSON = `{
  "configuration_name": "3d_fullres",
  "target_spacing": [1.5, 0.8, 0.8],
  "patch_size": [128, 128, 128],
  "transpose_forward": [0, 1, 2],
  "transpose_backward": [0, 1, 2],
  "normalization_schemes": ["CTNormalization"],
  "use_mask_for_norm": [false],
  "foreground_intensity_properties": {
    "0": {"mean": 102.3, "std": 150.1, "percentile_00_5": -958.0, "percentile_99_5": 327.0}
  },
  "resampling_fn_data_kwargs": {"is_seg": false, "order": 3, "order_z": 0, "force_separate_z": null},
  "resampling_fn_seg_kwargs": {"is_seg": true, "order": 1, "order_z": 0},
  "anisotropy_threshold": 3.0,
  "original_spacing": [2.5, 0.8, 0.8],
  "original_median_shape": [100, 512, 512]
}`

func TestDecodeParsesAllWireFields(t *testing.T) {
	p, err := plan.Decode([]byte(sampleJSON))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "3d_fullres", p.ConfigurationName)
	assert.Equal(t, [3]float64{1.5, 0.8, 0.8}, p.TargetSpacing)
	assert.Equal(t, [3]int{128, 128, 128}, p.PatchSize)
	assert.Equal(t, []string{"CTNormalization"}, p.NormalizationSchemes)
	assert.Equal(t, 3, p.ResamplingFnDataKwargs.Order)
	assert.Nil(t, p.ResamplingFnDataKwargs.ForceSeparateZ)
	assert.Equal(t, 3.0, p.AnisotropyThreshold)
}

func TestExtractCTNormalizationFromChannelZero(t *testing.T) {
	p, err := plan.Decode([]byte(sampleJSON))
	if !assert.NoError(t, err) {
		return
	}
	props, err := p.ExtractCTNormalization()
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 102.3, props.Mean)
	assert.Equal(t, 150.1, props.Std)
	assert.Equal(t, -958.0, props.Lower)
	assert.Equal(t, 327.0, props.Upper)
}

func TestExtractCTNormalizationRejectsUnsupportedScheme(t *testing.T) {
	p, err := plan.Decode([]byte(sampleJSON))
	if !assert.NoError(t, err) {
		return
	}
	p.NormalizationSchemes = []string{"ZScoreNormalization"}

	_, err = p.ExtractCTNormalization()
	if !assert.Error(t, err) {
		return
	}
	var unsupported *ctxerr.UnsupportedNormalizationScheme
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "ZScoreNormalization", unsupported.Scheme)
}

func TestResampleOptionsMirrorsDataKwargs(t *testing.T) {
	p, err := plan.Decode([]byte(sampleJSON))
	if !assert.NoError(t, err) {
		return
	}
	opts := p.ResampleOptions()
	assert.Equal(t, 3, opts.Order)
	assert.Equal(t, 0, opts.OrderZ)
	assert.Nil(t, opts.ForceSeparateZ)
	assert.Equal(t, 3.0, opts.AnisotropyThreshold)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := plan.Decode([]byte("{not json"))
	assert.Error(t, err)
}
