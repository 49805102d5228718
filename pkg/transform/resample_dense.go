package transform

import (
	"math"
	"runtime"

	"github.com/medvol/ctprep/pkg/kernel"
	"github.com/medvol/ctprep/pkg/volume"
	"golang.org/x/sync/errgroup"
)

// resampleDense3D implements spec.md §4.3.3: a fully separable-tensor-
// product cubic B-spline evaluated over the full 4x4x4 stencil per
// destination voxel, edge-clamped at the boundary. Parallelized over
// destination z-slices (spec.md §5/§9: "the recommended parallelization
// axis"), each slice written independently so there is no data race.
func resampleDense3D(v volume.Volume, out volume.Shape) []float32 {
	srcD, srcH, srcW := v.Shape[0], v.Shape[1], v.Shape[2]
	dstD, dstH, dstW := out[0], out[1], out[2]

	scaleZ := axisScale(srcD, dstD)
	scaleY := axisScale(srcH, dstH)
	scaleX := axisScale(srcW, dstW)

	data := make([]float32, dstD*dstH*dstW)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for dz := 0; dz < dstD; dz++ {
		dz := dz
		g.Go(func() error {
			resampleDenseSlice(v, data, dz, dstH, dstW, srcD, srcH, srcW, scaleZ, scaleY, scaleX)
			return nil
		})
	}
	_ = g.Wait()

	return data
}

// axisScale returns the source-space step (src-1)/max(dst-1,1) used by
// spec.md §4.3.3's endpoint-aligned coordinate mapping.
func axisScale(src, dst int) float64 {
	denom := dst - 1
	if denom < 1 {
		denom = 1
	}
	return float64(src-1) / float64(denom)
}

func resampleDenseSlice(v volume.Volume, data []float32, dz, dstH, dstW, srcD, srcH, srcW int, scaleZ, scaleY, scaleX float64) {
	sz := float64(dz) * scaleZ
	iz := int(math.Floor(sz))
	fz := sz - float64(iz)

	for dy := 0; dy < dstH; dy++ {
		sy := float64(dy) * scaleY
		iy := int(math.Floor(sy))
		fy := sy - float64(iy)

		base := (dz*dstH + dy) * dstW
		for dx := 0; dx < dstW; dx++ {
			sx := float64(dx) * scaleX
			ix := int(math.Floor(sx))
			fx := sx - float64(ix)

			var accZ float32
			for _, kz := range kernel.Stencil4 {
				zc := kernel.Clamp(iz+kz, 0, srcD-1)
				wz := float32(kernel.CubicWeight(float64(kz) - fz))

				var accY float32
				for _, ky := range kernel.Stencil4 {
					yc := kernel.Clamp(iy+ky, 0, srcH-1)
					wy := float32(kernel.CubicWeight(float64(ky) - fy))

					var accX float32
					for _, kx := range kernel.Stencil4 {
						xc := kernel.Clamp(ix+kx, 0, srcW-1)
						wx := float32(kernel.CubicWeight(float64(kx) - fx))
						accX += wx * v.At(zc, yc, xc)
					}
					accY += wy * accX
				}
				accZ += wz * accY
			}
			data[base+dx] = accZ
		}
	}
}
