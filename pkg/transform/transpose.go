package transform

import (
	"github.com/medvol/ctprep/pkg/ctxerr"
	"github.com/medvol/ctprep/pkg/volume"
)

// Transpose permutes v's three spatial axes (and spacing/orientation in
// lockstep) according to perm, a permutation of (0,1,2). Voxel at output
// index (d,h,w) equals voxel at input index (d,h,w) permuted by perm's
// inverse (spec.md §4.2): out.Shape[i] = in.Shape[perm[i]], and the output
// spacing is the input spacing reordered by the same perm (spec.md §3
// invariant, pinned against seed scenario S6 — see SPEC_FULL.md §9 for the
// open-question resolution).
//
// When perm is the identity (0,1,2), Transpose returns v unchanged — a
// shallow copy sharing the data buffer is permitted by spec.md §4.2, which
// is exactly what happens here since Volume is passed by value and its
// Data slice header is copied, not deep-cloned.
func Transpose(v volume.Volume, perm [3]int) volume.Volume {
	v.Validate()
	validatePermutation(perm)

	if perm == [3]int{0, 1, 2} {
		return v
	}

	inv := inversePermutation(perm)

	inShape := v.Shape
	outShape := volume.Shape{inShape[perm[0]], inShape[perm[1]], inShape[perm[2]]}
	outSpacing := volume.Vec3{v.Spacing[perm[0]], v.Spacing[perm[1]], v.Spacing[perm[2]]}

	data := make([]float32, outShape[0]*outShape[1]*outShape[2])

	for od := 0; od < outShape[0]; od++ {
		for oh := 0; oh < outShape[1]; oh++ {
			obase := (od*outShape[1] + oh) * outShape[2]
			for ow := 0; ow < outShape[2]; ow++ {
				out3 := [3]int{od, oh, ow}
				in3 := [3]int{out3[inv[0]], out3[inv[1]], out3[inv[2]]}
				data[obase+ow] = v.At(in3[0], in3[1], in3[2])
			}
		}
	}

	out := v.WithData(data, outShape)
	out.Spacing = outSpacing
	out.Orientation = v.Orientation.Permute(perm)
	return out
}

func validatePermutation(perm [3]int) {
	var seen [3]bool
	for _, p := range perm {
		if p < 0 || p > 2 || seen[p] {
			ctxerr.Raise(ctxerr.InvalidPermutation, "perm %v is not a permutation of (0,1,2)", perm)
		}
		seen[p] = true
	}
}

// inversePermutation returns inv such that inv[perm[i]] == i.
func inversePermutation(perm [3]int) [3]int {
	var inv [3]int
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
