// Package geom carries the 3x3 direction-cosine orientation that travels
// alongside a volume.Volume through every transform stage (permuted by
// Transpose, unchanged by the others), plus a 4x4 affine type built from
// it. It replaces the teacher repo's pkg/matrix package (a
// hand-rolled DMat44 type that was not retrieved into this pack — only its
// call sites in reader.go survived) with a thin wrapper over gonum/mat,
// which the rest of the retrieval pack already establishes as the
// ecosystem's linear-algebra library for this kind of bookkeeping.
package geom

import "gonum.org/v1/gonum/mat"

// Orientation is a 3x3 direction-cosine matrix (from DICOM IOP, or any
// equivalent source) describing how the volume's (d,h,w) axes sit in world
// space. The zero value is the identity orientation only if explicitly set
// that way by the caller; Identity() below is the canonical way to get one.
type Orientation struct {
	M [3][3]float64
}

// Identity returns the 3x3 identity orientation.
func Identity() Orientation {
	var o Orientation
	for i := 0; i < 3; i++ {
		o.M[i][i] = 1
	}
	return o
}

// Dense returns o as a gonum *mat.Dense for composition with other
// matrices (e.g. when building an Affine from orientation + spacing).
func (o Orientation) Dense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, o.M[i][j])
		}
	}
	return d
}

// Permute returns the orientation with both rows and columns permuted by
// perm, matching a Transpose of the volume's spatial axes: axis i of the
// output corresponds to axis perm[i] of the input.
func (o Orientation) Permute(perm [3]int) Orientation {
	var out Orientation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.M[i][j] = o.M[perm[i]][perm[j]]
		}
	}
	return out
}

// Affine is a 4x4 homogeneous transform from voxel indices (i,j,k) to world
// coordinates (x,y,z), the same role as the teacher's QtoXYZ/StoXYZ.
type Affine struct {
	M [4][4]float64
}

// FromOrientationSpacingOrigin builds the affine the way the teacher's
// parseData constructs StoXYZ from SrowX/Y/Z: the upper-left 3x3 is the
// orientation scaled by spacing along its columns, the last column is the
// origin, and the bottom row is [0,0,0,1].
func FromOrientationSpacingOrigin(o Orientation, spacing, origin [3]float64) Affine {
	var a Affine
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.M[i][j] = o.M[i][j] * spacing[j]
		}
		a.M[i][3] = origin[i]
	}
	a.M[3] = [4]float64{0, 0, 0, 1}
	return a
}

// Dense returns a as a gonum *mat.Dense.
func (a Affine) Dense() *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d.Set(i, j, a.M[i][j])
		}
	}
	return d
}

// Inverse returns the matrix inverse of a, computed via gonum/mat (the
// teacher's matrix.Mat44Inverse equivalent). Panics if a is singular, same
// failure mode as the teacher's own inverse (an unrecoverable malformed
// affine is a programmer/data error, not something a stage can recover
// from mid-pipeline).
func (a Affine) Inverse() Affine {
	var inv mat.Dense
	if err := inv.Inverse(a.Dense()); err != nil {
		panic("geom: affine is singular: " + err.Error())
	}
	var out Affine
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out.M[i][j] = inv.At(i, j)
		}
	}
	return out
}

// Apply transforms a voxel index (i,j,k) to world coordinates (x,y,z).
func (a Affine) Apply(i, j, k float64) (x, y, z float64) {
	x = a.M[0][0]*i + a.M[0][1]*j + a.M[0][2]*k + a.M[0][3]
	y = a.M[1][0]*i + a.M[1][1]*j + a.M[1][2]*k + a.M[1][3]
	z = a.M[2][0]*i + a.M[2][1]*j + a.M[2][2]*k + a.M[2][3]
	return
}
