// Package gif implements the container-format block demultiplexer and
// the variable-width LZW decompressor it drives. See the gif package
// (github.com/cam-per/gifdec/gif) for the public decoder contract.
package gif

import (
	"image/color"
	"io"
)

// Palette is an ordered sequence of up to 256 RGB triplets, exactly as
// stored in the container format: no alpha channel, always opaque.
type Palette color.Palette

// decodePalette reads size contiguous 3-byte RGB entries, grounded on
// gsc/pal.Decoder.Decode (the teacher's palette reader) trimmed to the
// one channel layout this container format ever uses.
func decodePalette(r io.Reader, size int) (Palette, error) {
	pal := make(Palette, size)
	var rgb [3]byte
	for i := 0; i < size; i++ {
		if _, err := io.ReadFull(r, rgb[:]); err != nil {
			return nil, errIO("reading palette entry", err)
		}
		pal[i] = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
	}
	return pal, nil
}
