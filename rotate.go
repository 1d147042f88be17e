package literoom

import "math"

// Filter selects the resampling filter used by ApplyRotation.
type Filter int

const (
	// FilterBilinear interpolates the 4 enclosing pixels.
	FilterBilinear Filter = iota
	// FilterLanczos3 uses a 6x6 Lanczos kernel, falling back to bilinear
	// near the image border.
	FilterLanczos3
)

// ComputeRotatedBounds returns the canvas size needed to hold the image
// rotated by angleDegrees without clipping. Multiples of 90 degrees are
// handled exactly; other angles use the |cos|/|sin| bounding box.
func ComputeRotatedBounds(width, height int, angleDegrees float64) (int, int) {
	angle := normalizeAngle(angleDegrees)
	switch angle {
	case 0, 180:
		return width, height
	case 90, 270:
		return height, width
	}
	theta := angle * math.Pi / 180
	sin, cos := math.Sincos(theta)
	w := float64(width)
	h := float64(height)
	newW := int(math.Round(math.Abs(w*cos) + math.Abs(h*sin)))
	newH := int(math.Round(math.Abs(w*sin) + math.Abs(h*cos)))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// ApplyRotation rotates the image about its center by angleDegrees,
// expanding the canvas per ComputeRotatedBounds. A positive angle rotates
// the visual image counter-clockwise. Destination pixels that inverse-map
// outside the source are black.
func ApplyRotation(img Raster, angleDegrees float64, filter Filter) (Raster, error) {
	if err := img.validate(); err != nil {
		return Raster{}, err
	}
	angle := normalizeAngle(angleDegrees)
	if angle == 0 || img.IsEmpty() {
		return img.Clone(), nil
	}

	newW, newH := ComputeRotatedBounds(img.Width, img.Height, angleDegrees)
	out := NewRaster(newW, newH)

	// Inverse mapping: rotate destination points by -angle into the source.
	sin, cos := math.Sincos(-angle * math.Pi / 180)
	srcCX := float64(img.Width) / 2
	srcCY := float64(img.Height) / 2
	dstCX := float64(newW) / 2
	dstCY := float64(newH) / 2

	parallelFor(newH, func(start, end int) {
		for y := start; y < end; y++ {
			dy := float64(y) + 0.5 - dstCY
			for x := 0; x < newW; x++ {
				dx := float64(x) + 0.5 - dstCX
				sx := dx*cos - dy*sin + srcCX - 0.5
				sy := dx*sin + dy*cos + srcCY - 0.5
				var r, g, b uint8
				if filter == FilterLanczos3 {
					r, g, b = sampleLanczos3(img, sx, sy)
				} else {
					r, g, b = sampleBilinear(img, sx, sy)
				}
				off := (y*newW + x) * 3
				out.Pix[off] = r
				out.Pix[off+1] = g
				out.Pix[off+2] = b
			}
		}
	})
	return out, nil
}

func normalizeAngle(angleDegrees float64) float64 {
	angle := math.Mod(angleDegrees, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// sampleBilinear interpolates the 4 enclosing pixels, rounding to nearest.
// Samples outside [0,w-1) x [0,h-1) are black.
func sampleBilinear(img Raster, x, y float64) (uint8, uint8, uint8) {
	if x < 0 || y < 0 || x >= float64(img.Width-1) || y >= float64(img.Height-1) {
		return 0, 0, 0
	}
	x0 := int(x)
	y0 := int(y)
	fx := float32(x - float64(x0))
	fy := float32(y - float64(y0))

	o00 := (y0*img.Width + x0) * 3
	o10 := o00 + 3
	o01 := o00 + img.Width*3
	o11 := o01 + 3

	var out [3]uint8
	for c := 0; c < 3; c++ {
		top := float32(img.Pix[o00+c])*(1-fx) + float32(img.Pix[o10+c])*fx
		bot := float32(img.Pix[o01+c])*(1-fx) + float32(img.Pix[o11+c])*fx
		out[c] = clampToByte(top*(1-fy) + bot*fy)
	}
	return out[0], out[1], out[2]
}

// sampleLanczos3 sums a 6x6 neighborhood weighted by the separable Lanczos
// kernel, normalized by the accumulated weight. It needs a 2-pixel margin on
// every side and falls back to bilinear outside that region.
func sampleLanczos3(img Raster, x, y float64) (uint8, uint8, uint8) {
	if x < 2 || y < 2 || x >= float64(img.Width-3) || y >= float64(img.Height-3) {
		return sampleBilinear(img, x, y)
	}
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))

	var sum [3]float64
	var weightSum float64
	for ky := -2; ky <= 3; ky++ {
		py := y0 + ky
		wy := lanczos3Kernel(y - float64(py))
		if wy == 0 {
			continue
		}
		rowOff := py * img.Width * 3
		for kx := -2; kx <= 3; kx++ {
			px := x0 + kx
			w := wy * lanczos3Kernel(x-float64(px))
			if w == 0 {
				continue
			}
			off := rowOff + px*3
			weightSum += w
			sum[0] += w * float64(img.Pix[off])
			sum[1] += w * float64(img.Pix[off+1])
			sum[2] += w * float64(img.Pix[off+2])
		}
	}
	if weightSum == 0 {
		return 0, 0, 0
	}
	return clampToByte(float32(sum[0] / weightSum)),
		clampToByte(float32(sum[1] / weightSum)),
		clampToByte(float32(sum[2] / weightSum))
}

func sinc(x float64) float64 {
	x = math.Abs(x) * math.Pi
	if x >= 1.220703e-4 {
		return math.Sin(x) / x
	}
	return 1
}

func lanczos3Kernel(in float64) float64 {
	if in > -3 && in < 3 {
		return sinc(in) * sinc(in*0.3333333333333333)
	}
	return 0
}
