package literoom

import "math"

// ApplyCrop copies the sub-rectangle addressed by normalized [0,1]
// coordinates into a new raster. Pixel values are copied verbatim.
//
// A crop covering the whole frame returns an identical copy. Degenerate
// requests are clamped to the source bounds and the output never shrinks
// below 1x1; an empty source comes back unchanged.
func ApplyCrop(img Raster, left, top, width, height float64) (Raster, error) {
	if err := img.validate(); err != nil {
		return Raster{}, err
	}
	if left <= 0 && top <= 0 && width >= 1 && height >= 1 {
		return img.Clone(), nil
	}
	if img.IsEmpty() {
		return img.Clone(), nil
	}

	px := int(math.Round(clamp01f64(left) * float64(img.Width)))
	py := int(math.Round(clamp01f64(top) * float64(img.Height)))
	pw := int(math.Round(clamp01f64(width) * float64(img.Width)))
	ph := int(math.Round(clamp01f64(height) * float64(img.Height)))

	if px > img.Width-1 {
		px = img.Width - 1
	}
	if py > img.Height-1 {
		py = img.Height - 1
	}
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	if px+pw > img.Width {
		pw = img.Width - px
	}
	if py+ph > img.Height {
		ph = img.Height - py
	}

	out := NewRaster(pw, ph)
	rowBytes := pw * 3
	for y := 0; y < ph; y++ {
		srcOff := ((py+y)*img.Width + px) * 3
		copy(out.Pix[y*rowBytes:(y+1)*rowBytes], img.Pix[srcOff:srcOff+rowBytes])
	}
	return out, nil
}
