package literoom

import "fmt"

// CropRect is a normalized crop rectangle relative to the source dimensions.
type CropRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DevelopSettings describes one full render request as produced by the
// editing UI: geometry first, then global adjustments, tone curve, and the
// mask stack.
type DevelopSettings struct {
	Angle       float64      `json:"angle,omitempty"`
	Filter      Filter       `json:"filter,omitempty"`
	Crop        *CropRect    `json:"crop,omitempty"`
	Adjustments Adjustments  `json:"adjustments,omitempty"`
	Curve       []CurvePoint `json:"curve,omitempty"`
	LinearMasks []LinearMask `json:"linearMasks,omitempty"`
	RadialMasks []RadialMask `json:"radialMasks,omitempty"`
}

// Develop renders the settings against img and returns a new raster.
// Stages run in the fixed order rotation, crop, global adjustments, tone
// curve, masked adjustments. The input raster is never mutated.
func Develop(img Raster, s DevelopSettings) (Raster, error) {
	if err := img.validate(); err != nil {
		return Raster{}, err
	}

	out := img
	owned := false
	if s.Angle != 0 {
		rotated, err := ApplyRotation(out, s.Angle, s.Filter)
		if err != nil {
			return Raster{}, fmt.Errorf("rotate: %w", err)
		}
		out = rotated
		owned = true
	}
	if s.Crop != nil {
		cropped, err := ApplyCrop(out, s.Crop.Left, s.Crop.Top, s.Crop.Width, s.Crop.Height)
		if err != nil {
			return Raster{}, fmt.Errorf("crop: %w", err)
		}
		out = cropped
		owned = true
	}
	if !owned {
		out = img.Clone()
	}

	ApplyAllAdjustments(out.Pix, s.Adjustments)

	if len(s.Curve) > 0 {
		lut, err := NewToneCurveLUT(s.Curve)
		if err != nil {
			return Raster{}, fmt.Errorf("tone curve: %w", err)
		}
		ApplyToneCurve(out.Pix, lut)
	}

	if len(s.LinearMasks) > 0 || len(s.RadialMasks) > 0 {
		if err := ApplyMaskedAdjustments(out.Pix, out.Width, out.Height, s.LinearMasks, s.RadialMasks); err != nil {
			return Raster{}, fmt.Errorf("masks: %w", err)
		}
	}
	return out, nil
}
