package literoom

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDevelopNoSettingsCopies(t *testing.T) {
	img := patternRaster(12, 8)
	out, err := Develop(img, DevelopSettings{})
	if err != nil {
		t.Fatalf("develop: %v", err)
	}
	if diff := cmp.Diff(img, out); diff != "" {
		t.Fatalf("empty settings changed the image (-want +got):\n%s", diff)
	}
	out.Pix[0]++
	if img.Pix[0] == out.Pix[0] {
		t.Fatal("develop result aliases the input buffer")
	}
}

func TestDevelopFullChain(t *testing.T) {
	img := patternRaster(40, 40)
	src := img.Clone()

	settings := DevelopSettings{
		Angle: 90,
		Crop:  &CropRect{Left: 0.25, Top: 0.25, Width: 0.5, Height: 0.5},
		Adjustments: Adjustments{
			Exposure: 0.5,
			Contrast: 15,
		},
		Curve: []CurvePoint{{0, 0}, {0.5, 0.4}, {1, 1}},
		RadialMasks: []RadialMask{{
			Gradient: RadialGradient{CenterX: 0.5, CenterY: 0.5, RadiusX: 0.4, RadiusY: 0.4, Feather: 0.5},
			Adjust:   Adjustments{Exposure: 1},
			Enabled:  true,
		}},
	}

	out, err := Develop(img, settings)
	if err != nil {
		t.Fatalf("develop: %v", err)
	}
	if out.Width != 20 || out.Height != 20 {
		t.Fatalf("developed dims = %dx%d, want 20x20", out.Width, out.Height)
	}
	if diff := cmp.Diff(src, img); diff != "" {
		t.Fatalf("develop mutated its input (-want +got):\n%s", diff)
	}
}

func TestDevelopBadCurve(t *testing.T) {
	img := patternRaster(4, 4)
	_, err := Develop(img, DevelopSettings{Curve: []CurvePoint{{X: 0.5, Y: 0.5}}})
	if err == nil {
		t.Fatal("expected error for malformed curve")
	}
	if !strings.Contains(err.Error(), "tone curve") {
		t.Fatalf("error %q does not name the failing stage", err)
	}
}

func TestDevelopSettingsJSON(t *testing.T) {
	raw := `{
		"angle": 3.5,
		"crop": {"left": 0.1, "top": 0.2, "width": 0.8, "height": 0.7},
		"adjustments": {"exposure": 0.5, "vibrance": 30},
		"curve": [{"x": 0, "y": 0}, {"x": 1, "y": 1}],
		"linearMasks": [{
			"gradient": {"startX": 0, "startY": 0, "endX": 1, "endY": 1, "feather": 0.5},
			"adjustments": {"shadows": 40},
			"enabled": true
		}]
	}`
	var s DevelopSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Angle != 3.5 || s.Crop == nil || s.Crop.Width != 0.8 {
		t.Fatalf("geometry decoded wrong: %+v", s)
	}
	if s.Adjustments.Exposure != 0.5 || s.Adjustments.Vibrance != 30 {
		t.Fatalf("adjustments decoded wrong: %+v", s.Adjustments)
	}
	if len(s.LinearMasks) != 1 || !s.LinearMasks[0].Enabled || s.LinearMasks[0].Adjust.Shadows != 40 {
		t.Fatalf("masks decoded wrong: %+v", s.LinearMasks)
	}
}

func BenchmarkDevelop(b *testing.B) {
	img := patternRaster(320, 240)
	settings := DevelopSettings{
		Adjustments: Adjustments{Exposure: 0.3, Contrast: 10, Vibrance: 25},
		Curve:       []CurvePoint{{0, 0}, {0.4, 0.35}, {0.7, 0.8}, {1, 1}},
		RadialMasks: []RadialMask{{
			Gradient: RadialGradient{CenterX: 0.5, CenterY: 0.5, RadiusX: 0.5, RadiusY: 0.5, Feather: 0.7},
			Adjust:   Adjustments{Exposure: -0.5},
			Enabled:  true,
		}},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Develop(img, settings); err != nil {
			b.Fatal(err)
		}
	}
}
