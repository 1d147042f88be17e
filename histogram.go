package literoom

// Histogram holds 256-bin channel and luma counts for an RGB8 buffer.
type Histogram struct {
	R    [256]uint32 `json:"r"`
	G    [256]uint32 `json:"g"`
	B    [256]uint32 `json:"b"`
	Luma [256]uint32 `json:"luma"`
}

// ComputeHistogram bins every RGB triplet of pix. Luma uses the BT.709 byte
// variant. Trailing bytes of a buffer whose length is not a multiple of 3
// are ignored.
func ComputeHistogram(pix []uint8) *Histogram {
	h := &Histogram{}
	n := len(pix) / 3
	for i := 0; i < n; i++ {
		off := i * 3
		r := pix[off]
		g := pix[off+1]
		b := pix[off+2]
		h.R[r]++
		h.G[g]++
		h.B[b]++
		h.Luma[LuminanceByte(r, g, b)]++
	}
	return h
}
