// Package literoom implements the develop engine of a non-destructive photo
// editor in pure Go.
//
// It operates on row-major RGB8 rasters and applies a deterministic chain of
// tonal adjustments, a monotone tone-curve lookup table, linear/radial
// gradient masks, and geometric transforms (crop, rotation). Decoding and
// encoding wrap the standard image codecs; all pixel math happens here.
package literoom
