package transform

import (
	"math"
	"runtime"

	"github.com/medvol/ctprep/pkg/kernel"
	"github.com/medvol/ctprep/pkg/volume"
	"golang.org/x/sync/errgroup"
)

// resampleSeparable implements spec.md §4.3.4's two-pass anisotropic path:
// an in-plane (XY) cubic pass producing an intermediate (D,H',W') buffer,
// followed by a through-plane (Z) nearest/linear pass to (D',H',W').
func resampleSeparable(v volume.Volume, out volume.Shape, opts ResampleOptions) []float32 {
	srcD, srcH, srcW := v.Shape[0], v.Shape[1], v.Shape[2]
	dstD, dstH, dstW := out[0], out[1], out[2]

	scaleY := axisScale(srcH, dstH)
	scaleX := axisScale(srcW, dstW)

	intermediate := make([]float32, srcD*dstH*dstW)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for z := 0; z < srcD; z++ {
		z := z
		g.Go(func() error {
			resampleInPlaneSlice(v, intermediate, z, dstH, dstW, srcH, srcW, scaleY, scaleX)
			return nil
		})
	}
	_ = g.Wait()

	return resampleThroughPlane(intermediate, srcD, dstH, dstW, dstD, opts.OrderZ)
}

// resampleInPlaneSlice resamples source slice z to (dstH, dstW) using the
// 4x4 cubic B-spline with edge clamp (spec.md §4.3.4 step 1).
func resampleInPlaneSlice(v volume.Volume, intermediate []float32, z, dstH, dstW, srcH, srcW int, scaleY, scaleX float64) {
	sliceStride := dstH * dstW
	sliceBase := z * sliceStride

	for dy := 0; dy < dstH; dy++ {
		sy := float64(dy) * scaleY
		iy := int(math.Floor(sy))
		fy := sy - float64(iy)

		rowBase := sliceBase + dy*dstW
		for dx := 0; dx < dstW; dx++ {
			sx := float64(dx) * scaleX
			ix := int(math.Floor(sx))
			fx := sx - float64(ix)

			var accY float32
			for _, ky := range kernel.Stencil4 {
				yc := kernel.Clamp(iy+ky, 0, srcH-1)
				wy := float32(kernel.CubicWeight(float64(ky) - fy))

				var accX float32
				for _, kx := range kernel.Stencil4 {
					xc := kernel.Clamp(ix+kx, 0, srcW-1)
					wx := float32(kernel.CubicWeight(float64(kx) - fx))
					accX += wx * v.At(z, yc, xc)
				}
				accY += wy * accX
			}
			intermediate[rowBase+dx] = accY
		}
	}
}

// resampleThroughPlane resamples the (srcD,dstH,dstW) intermediate buffer
// along Z to dstD, using nearest (orderZ==0) or linear (orderZ==1)
// interpolation (spec.md §4.3.4 step 2).
func resampleThroughPlane(intermediate []float32, srcD, dstH, dstW, dstD, orderZ int) []float32 {
	sliceStride := dstH * dstW
	scaleZ := axisScale(srcD, dstD)
	out := make([]float32, dstD*sliceStride)

	for dz := 0; dz < dstD; dz++ {
		sz := float64(dz) * scaleZ
		dstBase := dz * sliceStride

		switch orderZ {
		case 0:
			zc := kernel.Clamp(kernel.RoundHalfEven(sz), 0, srcD-1)
			copy(out[dstBase:dstBase+sliceStride], intermediate[zc*sliceStride:(zc+1)*sliceStride])
		default:
			lo := kernel.Clamp(int(math.Floor(sz)), 0, srcD-1)
			hi := kernel.Clamp(lo+1, 0, srcD-1)
			t := float32(sz - math.Floor(sz))
			loBase := lo * sliceStride
			hiBase := hi * sliceStride
			for i := 0; i < sliceStride; i++ {
				out[dstBase+i] = intermediate[loBase+i] + t*(intermediate[hiBase+i]-intermediate[loBase+i])
			}
		}
	}

	return out
}
