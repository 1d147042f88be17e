package literoom

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/tiff" // register TIFF decoding
)

// Decode reads a JPEG, PNG, or TIFF image and converts it to an RGB8 raster.
// EXIF orientation is expected to be normalized by the caller.
func Decode(r io.Reader) (Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Raster{}, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image.Image into an RGB8 raster, dropping alpha.
func FromImage(img image.Image) Raster {
	b := img.Bounds()
	out := NewRaster(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.YCbCr:
		fromYCbCr(out, src)
	case *image.RGBA:
		fromStride(out, src.Pix, src.Stride, 4)
	case *image.NRGBA:
		fromStride(out, src.Pix, src.Stride, 4)
	case *image.Gray:
		fromGray(out, src)
	default:
		parallelFor(out.Height, func(start, end int) {
			for y := start; y < end; y++ {
				for x := 0; x < out.Width; x++ {
					r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
					off := (y*out.Width + x) * 3
					out.Pix[off] = uint8(r >> 8)
					out.Pix[off+1] = uint8(g >> 8)
					out.Pix[off+2] = uint8(bl >> 8)
				}
			}
		})
	}
	return out
}

func fromYCbCr(dst Raster, src *image.YCbCr) {
	b := src.Bounds()
	parallelFor(dst.Height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < dst.Width; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				off := (y*dst.Width + x) * 3
				dst.Pix[off] = r
				dst.Pix[off+1] = g
				dst.Pix[off+2] = bl
			}
		}
	})
}

func fromStride(dst Raster, pix []uint8, stride, bpp int) {
	parallelFor(dst.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := pix[y*stride:]
			for x := 0; x < dst.Width; x++ {
				off := (y*dst.Width + x) * 3
				src := x * bpp
				dst.Pix[off] = row[src]
				dst.Pix[off+1] = row[src+1]
				dst.Pix[off+2] = row[src+2]
			}
		}
	})
}

func fromGray(dst Raster, src *image.Gray) {
	parallelFor(dst.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < dst.Width; x++ {
				off := (y*dst.Width + x) * 3
				v := row[x]
				dst.Pix[off] = v
				dst.Pix[off+1] = v
				dst.Pix[off+2] = v
			}
		}
	})
}

// ToRGBA converts the raster to an *image.RGBA with opaque alpha.
func (r Raster) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		srcRow := r.Pix[y*r.Width*3:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < r.Width; x++ {
			s := x * 3
			d := x * 4
			dstRow[d] = srcRow[s]
			dstRow[d+1] = srcRow[s+1]
			dstRow[d+2] = srcRow[s+2]
			dstRow[d+3] = 0xFF
		}
	}
	return dst
}

// EncodeJPEG writes the raster as a JPEG with the given quality (1-100).
func EncodeJPEG(w io.Writer, img Raster, quality int) error {
	if err := img.validate(); err != nil {
		return err
	}
	return jpeg.Encode(w, img.ToRGBA(), &jpeg.Options{Quality: quality})
}

// EncodePNG writes the raster as a PNG.
func EncodePNG(w io.Writer, img Raster) error {
	if err := img.validate(); err != nil {
		return err
	}
	return png.Encode(w, img.ToRGBA())
}
