// Package pipeline wires pkg/ingest, pkg/plan, and a pkg/backend.Backend
// together into the single driver spec.md §4.5 describes: crop to
// nonzero, transpose forward, resample to the plan's target spacing, then
// CT-normalize. It follows the teacher's NewNiiReader functional-options
// constructor (io.go): a Pipeline is assembled from a base value plus a
// list of `With...` options, each of which can fail, rather than a long
// positional constructor.
package pipeline

import (
	"fmt"

	"github.com/medvol/ctprep/pkg/backend"
	"github.com/medvol/ctprep/pkg/backend/cpu"
	"github.com/medvol/ctprep/pkg/ingest"
	"github.com/medvol/ctprep/pkg/plan"
	"github.com/medvol/ctprep/pkg/volume"
)

// Pipeline runs the four-stage preprocessing sequence over one bridge's
// output, using one backend and one plan.
type Pipeline struct {
	backend backend.Backend
	plan    *plan.PreprocessingParameters
	bridge  ingest.Bridge
}

// New builds a Pipeline. The default backend is cpu.New(); pass
// WithBackend to select another (e.g. gpu.New()).
func New(p *plan.PreprocessingParameters, bridge ingest.Bridge, options ...func(*Pipeline) error) (*Pipeline, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline: plan is nil")
	}
	if bridge == nil {
		return nil, fmt.Errorf("pipeline: bridge is nil")
	}

	pl := &Pipeline{
		backend: cpu.New(),
		plan:    p,
		bridge:  bridge,
	}

	for _, opt := range options {
		if err := opt(pl); err != nil {
			return nil, err
		}
	}

	return pl, nil
}

// WithBackend overrides the default CPU backend.
func WithBackend(b backend.Backend) func(*Pipeline) error {
	return func(pl *Pipeline) error {
		if b == nil {
			return fmt.Errorf("pipeline: backend is nil")
		}
		pl.backend = b
		return nil
	}
}

// Result is the output of Run: the preprocessed volume plus the bounding
// box Crop found, which the caller needs to map predictions back to the
// original image geometry (spec.md §4.1).
type Result struct {
	Volume volume.Volume
	BBox   volume.BoundingBox
}

// Run executes crop -> transpose(forward) -> resample(data kwargs) ->
// normalize against the bridge's ingested volume, in that order
// (spec.md §4.5).
func (pl *Pipeline) Run() (Result, error) {
	v, err := pl.bridge.Ingest()
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: ingest: %w", err)
	}

	cropped, bbox, err := pl.backend.Crop(v)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: crop: %w", err)
	}

	transposed, err := pl.backend.Transpose(cropped, pl.plan.TransposeForward)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: transpose: %w", err)
	}

	targetSpacing := volume.Vec3{pl.plan.TargetSpacing[0], pl.plan.TargetSpacing[1], pl.plan.TargetSpacing[2]}
	resampled, err := pl.backend.Resample(transposed, targetSpacing, pl.plan.ResampleOptions())
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: resample: %w", err)
	}

	ctProps, err := pl.plan.ExtractCTNormalization()
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: normalize: %w", err)
	}

	normalized, err := pl.backend.Normalize(resampled, ctProps)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: normalize: %w", err)
	}

	return Result{Volume: normalized, BBox: bbox}, nil
}
