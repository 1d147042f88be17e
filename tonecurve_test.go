package literoom

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToneCurveIdentity(t *testing.T) {
	lut, err := NewToneCurveLUT(DefaultToneCurve())
	if err != nil {
		t.Fatalf("build identity LUT: %v", err)
	}
	if !lut.IsIdentity() {
		t.Fatal("default curve must produce an identity LUT")
	}
	for i := 0; i < 256; i++ {
		if got := lut.At(uint8(i)); got != uint8(i) {
			t.Fatalf("lut[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestToneCurveRejectsMalformedInput(t *testing.T) {
	cases := [][]CurvePoint{
		nil,
		{{X: 0.5, Y: 0.5}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}}, // duplicate x
		{{X: 0, Y: 0}, {X: 0.7, Y: 0.5}, {X: 0.3, Y: 0.9}}, // descending x
	}
	for i, points := range cases {
		if _, err := NewToneCurveLUT(points); err == nil {
			t.Fatalf("case %d: expected error for malformed curve %v", i, points)
		}
	}
}

func TestToneCurveRoundsToNearest(t *testing.T) {
	// Half-slope line: the spline reduces to y = x/2 and the table must
	// round, not truncate.
	lut, err := NewToneCurveLUT([]CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 0.5}})
	if err != nil {
		t.Fatalf("build LUT: %v", err)
	}
	if lut.IsIdentity() {
		t.Fatal("half-slope curve flagged as identity")
	}
	if got := lut.At(0); got != 0 {
		t.Fatalf("lut[0] = %d, want 0", got)
	}
	if got := lut.At(2); got != 1 {
		t.Fatalf("lut[2] = %d, want 1", got)
	}
	if got := lut.At(255); got != 128 {
		t.Fatalf("lut[255] = %d, want 128 (round to nearest)", got)
	}
}

func assertMonotoneLUT(t *testing.T, points []CurvePoint) {
	t.Helper()
	lut, err := NewToneCurveLUT(points)
	if err != nil {
		t.Fatalf("build LUT for %v: %v", points, err)
	}
	for i := 0; i < 255; i++ {
		if lut.At(uint8(i)) > lut.At(uint8(i+1)) {
			t.Fatalf("lut not monotone at %d for %v: %d > %d",
				i, points, lut.At(uint8(i)), lut.At(uint8(i+1)))
		}
	}
}

func TestToneCurveMonotonicity(t *testing.T) {
	assertMonotoneLUT(t, []CurvePoint{{0, 0}, {0.25, 0.1}, {0.75, 0.9}, {1, 1}})
	assertMonotoneLUT(t, []CurvePoint{{0, 0}, {0.5, 0.5}, {0.6, 0.5}, {1, 1}})     // flat segment
	assertMonotoneLUT(t, []CurvePoint{{0, 0.1}, {0.4, 0.1}, {0.5, 0.8}, {1, 0.9}}) // steep step
}

func TestToneCurveFlatSegmentIsConstant(t *testing.T) {
	// A flat segment must map to a single byte value; any drift in the
	// Hermite evaluation shows up as a one-off dip after rounding.
	lut, err := NewToneCurveLUT([]CurvePoint{{0, 0.1}, {0.4, 0.1}, {0.5, 0.8}, {1, 0.9}})
	if err != nil {
		t.Fatalf("build LUT: %v", err)
	}
	for v := 0; v <= 102; v++ { // inputs covered by the flat [0, 0.4] segment
		if got := lut.At(uint8(v)); got != 26 {
			t.Fatalf("lut[%d] = %d, want 26 across the flat segment", v, got)
		}
	}
}

func TestToneCurveMonotonicityRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		n := 2 + rng.Intn(7)
		xs := map[float64]bool{}
		points := make([]CurvePoint, 0, n)
		for len(points) < n {
			x := float64(rng.Intn(1001)) / 1000
			if xs[x] {
				continue
			}
			xs[x] = true
			points = append(points, CurvePoint{X: x})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
		y := 0.0
		for i := range points {
			points[i].Y = y
			y += rng.Float64() * (1 - y) / 2
		}
		assertMonotoneLUT(t, points)
	}
}

func TestApplyToneCurve(t *testing.T) {
	lut, err := NewToneCurveLUT([]CurvePoint{{X: 0, Y: 0}, {X: 1, Y: 0.5}})
	if err != nil {
		t.Fatalf("build LUT: %v", err)
	}
	pix := []uint8{0, 2, 255}
	ApplyToneCurve(pix, lut)
	if diff := cmp.Diff([]uint8{0, 1, 128}, pix); diff != "" {
		t.Fatalf("tone curve apply mismatch (-want +got):\n%s", diff)
	}

	// Identity and nil LUTs are no-ops.
	pix = []uint8{9, 8, 7}
	identity, err := NewToneCurveLUT(DefaultToneCurve())
	if err != nil {
		t.Fatalf("build identity LUT: %v", err)
	}
	ApplyToneCurve(pix, identity)
	ApplyToneCurve(pix, nil)
	if diff := cmp.Diff([]uint8{9, 8, 7}, pix); diff != "" {
		t.Fatalf("identity apply modified pixels (-want +got):\n%s", diff)
	}
}

func TestToneCurveClampsOvershoot(t *testing.T) {
	// Steep interior segments may overshoot before clamping; the table must
	// stay within byte range and remain monotone.
	points := []CurvePoint{{0, 0}, {0.45, 0.02}, {0.55, 0.98}, {1, 1}}
	assertMonotoneLUT(t, points)
}
