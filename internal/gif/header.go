package gif

import (
	"io"

	"github.com/cam-per/gifdec/utils"
)

// LogicalScreen is the parsed header (spec §4.1, §6).
type LogicalScreen struct {
	Width, Height int
	Background    byte
	AspectRatio   byte
	GCTSize       int
}

// ReadHeader parses the 13-byte fixed header and returns the logical
// screen descriptor; the global palette (GCTSize entries) follows
// immediately in the stream and is read separately via DecodeGlobalPalette.
func ReadHeader(r io.Reader) (LogicalScreen, error) {
	var magic [3]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return LogicalScreen{}, errIO("reading magic bytes", err)
	}
	if string(magic[:]) != "GIF" {
		return LogicalScreen{}, errInvalidMagic("missing GIF signature")
	}

	var version [3]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return LogicalScreen{}, errIO("reading version bytes", err)
	}
	if string(version[:]) != "89a" {
		return LogicalScreen{}, errUnsupported("only the 89a dialect is supported")
	}

	width, err := utils.ReadUint16LE(r)
	if err != nil {
		return LogicalScreen{}, errIO("reading logical width", err)
	}
	height, err := utils.ReadUint16LE(r)
	if err != nil {
		return LogicalScreen{}, errIO("reading logical height", err)
	}
	fdsz, err := utils.ReadByte(r)
	if err != nil {
		return LogicalScreen{}, errIO("reading packed screen descriptor byte", err)
	}
	background, err := utils.ReadByte(r)
	if err != nil {
		return LogicalScreen{}, errIO("reading background color index", err)
	}
	aspect, err := utils.ReadByte(r)
	if err != nil {
		return LogicalScreen{}, errIO("reading pixel aspect ratio", err)
	}

	if fdsz&0x80 == 0 {
		return LogicalScreen{}, errUnsupported("no global color table present")
	}
	if (fdsz>>4)&0x07 != 0x07 {
		return LogicalScreen{}, errUnsupported("color space depth is not 8 bits")
	}

	gctExp := fdsz & 0x07
	return LogicalScreen{
		Width:       int(width),
		Height:      int(height),
		Background:  background,
		AspectRatio: aspect,
		GCTSize:     1 << (uint(gctExp) + 1),
	}, nil
}

// DecodeGlobalPalette reads screen.GCTSize contiguous RGB triplets.
func DecodeGlobalPalette(r io.Reader, screen LogicalScreen) (Palette, error) {
	return decodePalette(r, screen.GCTSize)
}

// ImageDescriptorPacked is the packed byte following an image
// descriptor's (x,y,w,h) fields (spec §4.3, §6).
type ImageDescriptorPacked byte

func (p ImageDescriptorPacked) HasLocalPalette() bool { return byte(p)&0x80 != 0 }
func (p ImageDescriptorPacked) Interlace() bool        { return byte(p)&0x40 != 0 }
func (p ImageDescriptorPacked) LocalPaletteSize() int {
	exp := byte(p) & 0x07
	return 1 << (uint(exp) + 1)
}

// ImageDescriptor is the result of parsing one image descriptor block.
type ImageDescriptor struct {
	Rect      FrameRect
	Interlace bool
	Packed    ImageDescriptorPacked
}

// ReadImageDescriptor parses the nine descriptor bytes that follow the
// ',' separator consumed by BlockReader.Next.
func ReadImageDescriptor(r io.Reader) (ImageDescriptor, error) {
	x, err := utils.ReadUint16LE(r)
	if err != nil {
		return ImageDescriptor{}, errIO("reading image x", err)
	}
	y, err := utils.ReadUint16LE(r)
	if err != nil {
		return ImageDescriptor{}, errIO("reading image y", err)
	}
	w, err := utils.ReadUint16LE(r)
	if err != nil {
		return ImageDescriptor{}, errIO("reading image width", err)
	}
	h, err := utils.ReadUint16LE(r)
	if err != nil {
		return ImageDescriptor{}, errIO("reading image height", err)
	}
	packedByte, err := utils.ReadByte(r)
	if err != nil {
		return ImageDescriptor{}, errIO("reading image packed byte", err)
	}
	packed := ImageDescriptorPacked(packedByte)
	rect := FrameRect{X: int(x), Y: int(y), W: int(w), H: int(h)}
	if rect.W <= 0 || rect.H <= 0 {
		return ImageDescriptor{}, errMalformed("image rect has zero area")
	}
	return ImageDescriptor{Rect: rect, Interlace: packed.Interlace(), Packed: packed}, nil
}

// DecodeLocalPalette reads desc.Packed.LocalPaletteSize() RGB triplets,
// when desc.Packed.HasLocalPalette() is true.
func DecodeLocalPalette(r io.Reader, desc ImageDescriptor) (Palette, error) {
	return decodePalette(r, desc.Packed.LocalPaletteSize())
}

// CheckRect enforces that rect lies entirely within the logical screen
// (spec §3 FrameRect invariant).
func CheckRect(rect FrameRect, screen LogicalScreen) error {
	if rect.X < 0 || rect.Y < 0 ||
		rect.X+rect.W > screen.Width ||
		rect.Y+rect.H > screen.Height {
		return errMalformed("image rect does not lie within the logical screen")
	}
	return nil
}
