package transform

import "github.com/medvol/ctprep/pkg/volume"

// Crop shrinks v to the tight bounding box of non-zero voxels (exact
// equality against 0.0, not a tolerance — spec.md §4.1/§9: this matches the
// reference behavior on HU data where background is clamped to 0
// upstream). It returns the cropped Volume (with BBox set) and the box
// itself.
//
// If v is entirely zero, Crop returns v unchanged with BBox set to the
// whole-volume box {start=(0,0,0), end=shape} — no crop occurred, but the
// inverse box is still well defined (spec.md §4.1 "degenerate case").
func Crop(v volume.Volume) (volume.Volume, volume.BoundingBox) {
	v.Validate()

	d, h, w := v.Shape[0], v.Shape[1], v.Shape[2]
	start := volume.Shape{d, h, w}
	end := volume.Shape{0, 0, 0}
	found := false

	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			base := (z*h + y) * w
			for x := 0; x < w; x++ {
				if v.Data[base+x] != 0 {
					found = true
					if z < start[0] {
						start[0] = z
					}
					if y < start[1] {
						start[1] = y
					}
					if x < start[2] {
						start[2] = x
					}
					if z+1 > end[0] {
						end[0] = z + 1
					}
					if y+1 > end[1] {
						end[1] = y + 1
					}
					if x+1 > end[2] {
						end[2] = x + 1
					}
				}
			}
		}
	}

	if !found {
		box := volume.BoundingBox{Start: volume.Shape{0, 0, 0}, End: v.Shape}
		out := v
		out.BBox = &box
		return out, box
	}

	box := volume.BoundingBox{Start: start, End: end}
	size := box.Size()

	data := make([]float32, size[0]*size[1]*size[2])
	idx := 0
	for z := start[0]; z < end[0]; z++ {
		for y := start[1]; y < end[1]; y++ {
			base := (z*h + y) * w
			for x := start[2]; x < end[2]; x++ {
				data[idx] = v.Data[base+x]
				idx++
			}
		}
	}

	out := v.WithData(data, size)
	out.BBox = &box
	return out, box
}
