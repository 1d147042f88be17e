package literoom

// ITU-R BT.709 luma weights. They sum to 1, so gray input reproduces itself.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luminance returns the perceptual brightness of a normalized RGB value.
func Luminance(r, g, b float32) float32 {
	return lumaR*r + lumaG*g + lumaB*b
}

// LuminanceByte returns the perceptual brightness of an RGB8 value,
// rounded to the nearest byte.
func LuminanceByte(r, g, b uint8) uint8 {
	l := Luminance(float32(r)/255, float32(g)/255, float32(b)/255)
	return clampToByte(l * 255)
}
