// Package ingest describes the volume ingest bridge spec.md §6 treats as an
// external collaborator — full DICOM decoding is explicitly out of scope —
// and ships one minimal, concrete adapter for the one conversion spec.md
// does pin down: raw 16-bit pixel data to float32 Hounsfield Units via
// HU = raw*slope + intercept, grounded in the pack's dicos.go CTImage
// (RescaleSlope/RescaleIntercept) and the teacher's own Nii.getAt scaling
// line.
package ingest

import (
	"fmt"
	"log/slog"

	"github.com/medvol/ctprep/pkg/geom"
	"github.com/medvol/ctprep/pkg/volume"
)

// Bridge produces a volume.Volume in float32 HU, exposing shape as
// (D,H,W), spacing in (z,y,x) mm, an origin, and an orientation — and,
// per spec.md §6, never transposing: axis reordering is the core's job.
type Bridge interface {
	Ingest() (volume.Volume, error)
}

// RawPixelBridge adapts a flat buffer of raw 16-bit samples (signed or
// unsigned) plus a per-series rescale slope/intercept into a Volume. It is
// not a DICOM or NIfTI decoder: it assumes the caller has already read the
// pixel data out of whatever container format it lives in.
type RawPixelBridge struct {
	Shape       volume.Shape
	Spacing     volume.Vec3
	Origin      volume.Vec3
	Orientation geom.Orientation

	// Raw holds one sample per voxel, row-major (D,H,W), already
	// byte-order-decoded into Go integers by the caller.
	Raw []int32

	// Slope and Intercept implement HU = raw*slope + intercept, applied
	// per voxel in float32 arithmetic (spec.md §6).
	Slope     float32
	Intercept float32
}

// Ingest converts b.Raw into a float32 HU Volume.
func (b RawPixelBridge) Ingest() (volume.Volume, error) {
	want := b.Shape[0] * b.Shape[1] * b.Shape[2]
	if len(b.Raw) != want {
		return volume.Volume{}, fmt.Errorf("ingest: raw buffer has %d samples, want %d for shape %v", len(b.Raw), want, b.Shape)
	}

	slope := b.Slope
	if slope == 0 {
		slope = 1
	}

	data := make([]float32, want)
	for i, raw := range b.Raw {
		data[i] = float32(raw)*slope + b.Intercept
	}

	v := volume.New(data, b.Shape, b.Spacing, b.Origin, b.Orientation)

	slog.Debug("ingested raw pixel buffer",
		"shape", b.Shape,
		"spacing", b.Spacing,
		"slope", slope,
		"intercept", b.Intercept,
	)

	return v, nil
}
