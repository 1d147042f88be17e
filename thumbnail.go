package literoom

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nfnt/resize"
)

// TIFF/IFD constants used by RAW containers that embed a JPEG preview.
const (
	tiffMagic = 42

	tagStripOffsets          = 0x0111
	tagStripByteCounts       = 0x0117
	tagJPEGInterchange       = 0x0201
	tagJPEGInterchangeLength = 0x0202

	thumbMaxIFDs        = 16
	thumbIFDEntrySize   = 12
	thumbTIFFHeaderSize = 8
)

var (
	jpegSOI = []byte{0xFF, 0xD8}

	errNoThumbnail = errors.New("no embedded JPEG thumbnail")
)

// ExtractThumbnail walks the IFD chain of a TIFF-based RAW container and
// returns the first embedded JPEG it finds, either via the
// JPEGInterchangeFormat tag pair or via strip offsets that point at JPEG
// data. Every offset is bounds-checked before use.
func ExtractThumbnail(data []byte) ([]byte, error) {
	if len(data) < thumbTIFFHeaderSize {
		return nil, errors.New("truncated TIFF header")
	}
	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, errors.New("not a TIFF container")
	}
	if order.Uint16(data[2:4]) != tiffMagic {
		return nil, errors.New("bad TIFF magic")
	}

	offset := int64(order.Uint32(data[4:8]))
	for i := 0; i < thumbMaxIFDs && offset != 0; i++ {
		thumb, next, err := scanIFD(data, order, offset)
		if err != nil {
			return nil, err
		}
		if thumb != nil {
			return thumb, nil
		}
		offset = next
	}
	return nil, errNoThumbnail
}

// scanIFD reads one IFD, returning the embedded JPEG if the IFD carries one
// and the offset of the next IFD in the chain.
func scanIFD(data []byte, order binary.ByteOrder, offset int64) ([]byte, int64, error) {
	if offset < 0 || offset+2 > int64(len(data)) {
		return nil, 0, fmt.Errorf("IFD offset %d out of bounds", offset)
	}
	count := int64(order.Uint16(data[offset : offset+2]))
	entriesEnd := offset + 2 + count*thumbIFDEntrySize
	if entriesEnd+4 > int64(len(data)) {
		return nil, 0, fmt.Errorf("IFD at %d overruns container", offset)
	}

	var jpegOff, jpegLen, stripOff, stripLen uint32
	for i := int64(0); i < count; i++ {
		entry := data[offset+2+i*thumbIFDEntrySize:]
		tag := order.Uint16(entry[0:2])
		valueCount := order.Uint32(entry[4:8])
		value := order.Uint32(entry[8:12])
		switch tag {
		case tagJPEGInterchange:
			jpegOff = value
		case tagJPEGInterchangeLength:
			jpegLen = value
		case tagStripOffsets:
			if valueCount == 1 {
				stripOff = value
			}
		case tagStripByteCounts:
			if valueCount == 1 {
				stripLen = value
			}
		}
	}
	next := int64(order.Uint32(data[entriesEnd : entriesEnd+4]))

	if thumb := sliceJPEG(data, jpegOff, jpegLen); thumb != nil {
		return thumb, next, nil
	}
	if thumb := sliceJPEG(data, stripOff, stripLen); thumb != nil {
		return thumb, next, nil
	}
	return nil, next, nil
}

func sliceJPEG(data []byte, off, length uint32) []byte {
	if off == 0 || length < 4 {
		return nil
	}
	end := int64(off) + int64(length)
	if end > int64(len(data)) {
		return nil
	}
	b := data[off:end]
	if b[0] != jpegSOI[0] || b[1] != jpegSOI[1] {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Preview returns a display-sized copy of the raster, downscaled with
// Lanczos3 so the longer side is at most maxDim. Rasters already within the
// limit come back as a plain copy.
func Preview(img Raster, maxDim uint) Raster {
	if img.IsEmpty() || (uint(img.Width) <= maxDim && uint(img.Height) <= maxDim) {
		return img.Clone()
	}
	scaled := resize.Thumbnail(maxDim, maxDim, img.ToRGBA(), resize.Lanczos3)
	return FromImage(scaled)
}
