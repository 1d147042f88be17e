package literoom

import (
	"fmt"
	"math"
)

const (
	// minMaskStrength is the threshold below which a mask leaves a pixel
	// untouched.
	minMaskStrength = 0.001
	// minRadius floors the radial gradient radii to avoid division by zero.
	minRadius = 0.001
)

// LinearGradient is a directional mask over normalized image coordinates.
// Points may sit outside [0,1] while a gradient is dragged in a preview.
// Strength is 1 on the start side, 0 on the end side, with a smootherstep
// transition of normalized width Feather centered between the two points.
type LinearGradient struct {
	StartX  float64 `json:"startX"`
	StartY  float64 `json:"startY"`
	EndX    float64 `json:"endX"`
	EndY    float64 `json:"endY"`
	Feather float64 `json:"feather"`
}

// Evaluate returns the mask strength at the normalized point (x, y).
func (g LinearGradient) Evaluate(x, y float64) float64 {
	dx := g.EndX - g.StartX
	dy := g.EndY - g.StartY
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		// Degenerate gradient, start == end.
		return 0.5
	}
	t := ((x-g.StartX)*dx + (y-g.StartY)*dy) / lenSq
	zone := clamp01f64(g.Feather) / 2
	if t <= 0.5-zone {
		return 1
	}
	if t >= 0.5+zone {
		return 0
	}
	return 1 - smootherstep((t-(0.5-zone))/(2*zone))
}

// RadialGradient is an elliptical mask over normalized image coordinates.
// Strength is 1 inside the feathered ellipse and 0 outside; Invert flips it.
type RadialGradient struct {
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
	RadiusX  float64 `json:"radiusX"`
	RadiusY  float64 `json:"radiusY"`
	Rotation float64 `json:"rotation"` // radians
	Feather  float64 `json:"feather"`
	Invert   bool    `json:"invert,omitempty"`
}

// Evaluate returns the mask strength at the normalized point (x, y).
func (g RadialGradient) Evaluate(x, y float64) float64 {
	dx := x - g.CenterX
	dy := y - g.CenterY
	// Rotate into the ellipse frame.
	sin, cos := math.Sincos(-g.Rotation)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	nx := rx / math.Max(g.RadiusX, minRadius)
	ny := ry / math.Max(g.RadiusY, minRadius)
	dist := math.Sqrt(nx*nx + ny*ny) // 1.0 = ellipse boundary

	feather := clamp01f64(g.Feather)
	inner := 1 - feather
	var m float64
	switch {
	case dist <= inner:
		m = 1
	case dist >= 1:
		m = 0
	default:
		m = 1 - smootherstep((dist-inner)/(1-inner))
	}
	if g.Invert {
		return 1 - m
	}
	return m
}

// LinearMask pairs a linear gradient with the adjustments it applies.
type LinearMask struct {
	Gradient LinearGradient `json:"gradient"`
	Adjust   Adjustments    `json:"adjustments"`
	Enabled  bool           `json:"enabled"`
}

// RadialMask pairs a radial gradient with the adjustments it applies.
type RadialMask struct {
	Gradient RadialGradient `json:"gradient"`
	Adjust   Adjustments    `json:"adjustments"`
	Enabled  bool           `json:"enabled"`
}

// ApplyMaskedAdjustments applies every enabled mask entry to pix in place,
// linear entries first, then radial entries, each over the whole raster.
// For each pixel the masks fold sequentially: every entry runs the full
// adjustment pipeline on the current blended color and mixes the result in
// by its mask strength, so masks are cumulative and order-sensitive.
// Pixels no entry touches are left byte-for-byte unchanged.
func ApplyMaskedAdjustments(pix []uint8, width, height int, linear []LinearMask, radial []RadialMask) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("invalid raster dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return fmt.Errorf("pixel buffer length %d does not match %dx%d raster", len(pix), width, height)
	}
	active := false
	for _, m := range linear {
		if m.Enabled && !m.Adjust.IsDefault() {
			active = true
			break
		}
	}
	if !active {
		for _, m := range radial {
			if m.Enabled && !m.Adjust.IsDefault() {
				active = true
				break
			}
		}
	}
	if !active {
		return nil
	}

	parallelFor(height, func(start, end int) {
		for py := start; py < end; py++ {
			ny := (float64(py) + 0.5) / float64(height)
			for px := 0; px < width; px++ {
				nx := (float64(px) + 0.5) / float64(width)
				off := (py*width + px) * 3
				r := float32(pix[off]) / 255
				g := float32(pix[off+1]) / 255
				b := float32(pix[off+2]) / 255
				touched := false
				for i := range linear {
					m := &linear[i]
					if !m.Enabled || m.Adjust.IsDefault() {
						continue
					}
					s := m.Gradient.Evaluate(nx, ny)
					if s < minMaskStrength {
						continue
					}
					r, g, b = blendAdjusted(r, g, b, m.Adjust, float32(s))
					touched = true
				}
				for i := range radial {
					m := &radial[i]
					if !m.Enabled || m.Adjust.IsDefault() {
						continue
					}
					s := m.Gradient.Evaluate(nx, ny)
					if s < minMaskStrength {
						continue
					}
					r, g, b = blendAdjusted(r, g, b, m.Adjust, float32(s))
					touched = true
				}
				if touched {
					pix[off] = truncToByte(r)
					pix[off+1] = truncToByte(g)
					pix[off+2] = truncToByte(b)
				}
			}
		}
	})
	return nil
}

func blendAdjusted(r, g, b float32, adj Adjustments, strength float32) (float32, float32, float32) {
	tr, tg, tb := adj.apply(r, g, b)
	inv := 1 - strength
	return r*inv + tr*strength, g*inv + tg*strength, b*inv + tb*strength
}
