package literoom

import "math"

func exp2f(v float32) float32 { return float32(math.Exp2(float64(v))) }

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp01f64(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// smoothstep is the cubic Hermite ease between edges e0 and e1.
// The edges may be reversed (e1 < e0).
func smoothstep(e0, e1, x float32) float32 {
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// smootherstep is Perlin's quintic ease with zero first and second
// derivatives at both endpoints.
func smootherstep(t float64) float64 {
	t = clamp01f64(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// truncToByte clamps to [0,1] and truncates to a byte. The base pipeline and
// the mask blend convert this way; resampling and the tone-curve LUT round
// instead (see clampToByte).
func truncToByte(v float32) uint8 {
	return uint8(clamp01(v) * 255)
}

// clampToByte clamps to byte range rounding to nearest.
func clampToByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
