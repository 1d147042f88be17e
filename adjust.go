package literoom

// Adjustments holds the ten tonal/color adjustment parameters of the develop
// pipeline. The zero value is a no-op for every operator. Exposure is in
// stops; every other field uses the UI range [-100, 100]. Out-of-range values
// are accepted and simply produce extreme output; only the final color is
// clamped.
type Adjustments struct {
	Exposure    float32 `json:"exposure,omitempty"`
	Contrast    float32 `json:"contrast,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
	Tint        float32 `json:"tint,omitempty"`
	Highlights  float32 `json:"highlights,omitempty"`
	Shadows     float32 `json:"shadows,omitempty"`
	Whites      float32 `json:"whites,omitempty"`
	Blacks      float32 `json:"blacks,omitempty"`
	Vibrance    float32 `json:"vibrance,omitempty"`
	Saturation  float32 `json:"saturation,omitempty"`
}

// IsDefault reports whether every adjustment sits at its no-op value.
func (a Adjustments) IsDefault() bool {
	return a == Adjustments{}
}

// apply runs the ten operators in their fixed order on one normalized pixel.
// Intermediate values may leave [0,1]; callers clamp the final color.
// Luminance is recomputed from the live channel values before
// highlights/shadows and again inside saturation/vibrance, never cached
// from an earlier stage.
func (a Adjustments) apply(r, g, b float32) (float32, float32, float32) {
	if a.Exposure != 0 {
		m := exp2f(a.Exposure)
		r *= m
		g *= m
		b *= m
	}

	if a.Contrast != 0 {
		f := 1 + a.Contrast/100
		r = (r-0.5)*f + 0.5
		g = (g-0.5)*f + 0.5
		b = (b-0.5)*f + 0.5
	}

	if a.Temperature != 0 {
		// Negative shift warms (more red, less blue), positive cools.
		shift := a.Temperature / 100 * 0.3
		r *= 1 - shift
		b *= 1 + shift
	}

	if a.Tint != 0 {
		shift := a.Tint / 100 * 0.2
		if shift < 0 {
			g *= 1 - shift
		} else {
			r *= 1 + shift
			g *= 1 - shift
			b *= 1 + shift
		}
	}

	if a.Highlights != 0 || a.Shadows != 0 {
		lum := Luminance(r, g, b)
		if a.Highlights != 0 {
			adj := a.Highlights / 100 * smoothstep(0.5, 1.0, lum)
			r, g, b = liftOrScale(r, g, b, adj)
		}
		if a.Shadows != 0 {
			// Reversed edges: full effect as luminance approaches 0.
			adj := a.Shadows / 100 * smoothstep(0.5, 0.0, lum)
			r, g, b = liftOrScale(r, g, b, adj)
		}
	}

	if a.Whites != 0 && max3(r, g, b) > 0.9 {
		m := 1 + a.Whites/100*0.3
		r *= m
		g *= m
		b *= m
	}

	if a.Blacks != 0 && min3(r, g, b) < 0.1 {
		m := 1 + a.Blacks/100*0.2
		r *= m
		g *= m
		b *= m
	}

	if a.Saturation != 0 {
		r, g, b = scaleSaturation(r, g, b, a.Saturation)
	}

	if a.Vibrance != 0 {
		mx := max3(r, g, b)
		var sat float32
		if mx > 0 {
			sat = (mx - min3(r, g, b)) / mx
		}
		protect := float32(1.0)
		// Skin-tone heuristic: warm ordered channels get half strength.
		if r > g && g > b && r-g > 0.06 {
			protect = 0.5
		}
		if effective := a.Vibrance * protect * (1 - sat); effective != 0 {
			r, g, b = scaleSaturation(r, g, b, effective)
		}
	}

	return r, g, b
}

// liftOrScale applies the shared highlights/shadows response: a negative
// adjustment scales the channels down, a positive one lifts them additively.
func liftOrScale(r, g, b, adj float32) (float32, float32, float32) {
	if adj < 0 {
		m := 1 + adj
		return r * m, g * m, b * m
	}
	add := adj * 0.5
	return r + add, g + add, b + add
}

// scaleSaturation moves each channel away from (or toward) the live
// luminance by 1+amount/100.
func scaleSaturation(r, g, b, amount float32) (float32, float32, float32) {
	gray := Luminance(r, g, b)
	f := 1 + amount/100
	return gray + (r-gray)*f, gray + (g-gray)*f, gray + (b-gray)*f
}

// ApplyAllAdjustments runs the adjustment pipeline over every RGB triplet of
// pix in place. A default Adjustments leaves the buffer untouched, which is
// bit-exact with running the chain since each operator no-ops at zero.
// Trailing bytes of a buffer whose length is not a multiple of 3 are ignored.
func ApplyAllAdjustments(pix []uint8, adj Adjustments) {
	if adj.IsDefault() {
		return
	}
	parallelFor(len(pix)/3, func(start, end int) {
		for i := start; i < end; i++ {
			off := i * 3
			r := float32(pix[off]) / 255
			g := float32(pix[off+1]) / 255
			b := float32(pix[off+2]) / 255
			r, g, b = adj.apply(r, g, b)
			pix[off] = truncToByte(r)
			pix[off+1] = truncToByte(g)
			pix[off+2] = truncToByte(b)
		}
	})
}
