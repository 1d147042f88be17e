package literoom

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CurvePoint is a tone-curve control point with X and Y in [0,1].
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultToneCurve returns the two-point identity curve.
func DefaultToneCurve() []CurvePoint {
	return []CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 1}}
}

// ToneCurveLUT maps every input byte to an output byte. It is built once per
// curve and may be cached by the caller and applied to any number of pixels.
type ToneCurveLUT struct {
	table    [256]uint8
	identity bool
}

// NewToneCurveLUT builds the lookup table for the given control points using
// a Fritsch-Carlson monotonicity-preserving cubic Hermite spline, so the
// curve never reverses direction between non-decreasing control points.
//
// The points must be sorted by strictly increasing X and there must be at
// least two of them; malformed input is rejected, not repaired.
func NewToneCurveLUT(points []CurvePoint) (*ToneCurveLUT, error) {
	if len(points) < 2 {
		return nil, errors.New("tone curve needs at least two control points")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, fmt.Errorf("tone curve x values must be strictly increasing (point %d: %v after %v)",
				i, points[i].X, points[i-1].X)
		}
	}

	lut := &ToneCurveLUT{}
	tangents := fritschCarlsonTangents(points)
	identity := true
	for v := 0; v < 256; v++ {
		x := float64(v) / 255
		y := clamp01f64(evalHermite(points, tangents, x))
		// Round to nearest; the base pipeline truncates, the LUT does not.
		lut.table[v] = uint8(y*255 + 0.5)
		if lut.table[v] != uint8(v) {
			identity = false
		}
	}
	lut.identity = identity
	return lut, nil
}

// IsIdentity reports whether applying the LUT is a no-op.
func (l *ToneCurveLUT) IsIdentity() bool { return l.identity }

// At returns the mapped output for input byte v.
func (l *ToneCurveLUT) At(v uint8) uint8 { return l.table[v] }

// ApplyToneCurve maps every byte of pix through the LUT in place.
// Channels are independent; no further clamping is needed.
func ApplyToneCurve(pix []uint8, lut *ToneCurveLUT) {
	if lut == nil || lut.identity {
		return
	}
	parallelFor(len(pix), func(start, end int) {
		for i := start; i < end; i++ {
			pix[i] = lut.table[pix[i]]
		}
	})
}

// fritschCarlsonTangents computes Hermite tangents that keep the interpolant
// monotone on every interval where the data is monotone. Interior tangents
// average the neighboring secants when they share sign and are zeroed
// otherwise; tangents whose alpha^2+beta^2 leaves the Fritsch-Carlson circle
// of radius 3 are rescaled onto it.
func fritschCarlsonTangents(points []CurvePoint) []float64 {
	n := len(points)
	secants := make([]float64, n-1)
	for i := range secants {
		secants[i] = (points[i+1].Y - points[i].Y) / (points[i+1].X - points[i].X)
	}

	tangents := make([]float64, n)
	tangents[0] = secants[0]
	tangents[n-1] = secants[n-2]
	for i := 1; i < n-1; i++ {
		if secants[i-1] == 0 || secants[i] == 0 || secants[i-1]*secants[i] < 0 {
			tangents[i] = 0
		} else {
			tangents[i] = (secants[i-1] + secants[i]) / 2
		}
	}

	for i := 0; i < n-1; i++ {
		if secants[i] == 0 {
			tangents[i] = 0
			tangents[i+1] = 0
			continue
		}
		alpha := tangents[i] / secants[i]
		beta := tangents[i+1] / secants[i]
		if s := alpha*alpha + beta*beta; s > 9 {
			tau := 3 / math.Sqrt(s)
			tangents[i] = tau * alpha * secants[i]
			tangents[i+1] = tau * beta * secants[i]
		}
	}
	return tangents
}

func evalHermite(points []CurvePoint, tangents []float64, x float64) float64 {
	last := len(points) - 1
	if x <= points[0].X {
		return points[0].Y
	}
	if x >= points[last].X {
		return points[last].Y
	}
	// Index of the interval containing x.
	i := sort.Search(last, func(j int) bool { return points[j+1].X >= x }) // x <= points[i+1].X
	h := points[i+1].X - points[i].X
	t := (x - points[i].X) / h
	t2 := t * t
	t3 := t2 * t
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	// Evaluated as y_i plus offsets so that segments with equal endpoints and
	// zero tangents yield y_i exactly; the h00*y0 + h01*y1 form drifts by an
	// ulp because h00+h01 is not exactly 1, which can break table monotonicity
	// after rounding.
	return points[i].Y + h01*(points[i+1].Y-points[i].Y) + h10*h*tangents[i] + h11*h*tangents[i+1]
}
