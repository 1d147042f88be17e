package literoom

import "fmt"

// Raster is a row-major RGB8 image, 3 bytes per pixel, no row padding.
// A width or height of 0 denotes an empty raster with an empty pixel buffer.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster allocates a zeroed raster of the given dimensions.
func NewRaster(width, height int) Raster {
	return Raster{Width: width, Height: height, Pix: make([]uint8, width*height*3)}
}

// Clone returns a deep copy of the raster.
func (r Raster) Clone() Raster {
	out := Raster{Width: r.Width, Height: r.Height, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// IsEmpty reports whether the raster has no pixel grid.
func (r Raster) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

func (r Raster) validate() error {
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("invalid raster dimensions %dx%d", r.Width, r.Height)
	}
	if len(r.Pix) != r.Width*r.Height*3 {
		return fmt.Errorf("pixel buffer length %d does not match %dx%d raster", len(r.Pix), r.Width, r.Height)
	}
	return nil
}
