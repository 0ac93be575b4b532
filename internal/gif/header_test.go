package gif

import (
	"bytes"
	"testing"
)

func validHeaderBytes() []byte {
	return []byte{
		'G', 'I', 'F', '8', '9', 'a',
		0x01, 0x00, // width = 1
		0x01, 0x00, // height = 1
		0xF0,       // fdsz: GCT present, 8-bit depth, gct_exp=0 (2 entries)
		0x00, 0x00, // background, aspect
	}
}

func TestReadHeaderValid(t *testing.T) {
	screen, err := ReadHeader(bytes.NewReader(validHeaderBytes()))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if screen.Width != 1 || screen.Height != 1 {
		t.Fatalf("screen dims = %dx%d, want 1x1", screen.Width, screen.Height)
	}
	if screen.GCTSize != 2 {
		t.Fatalf("GCTSize = %d, want 2", screen.GCTSize)
	}
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	data := append([]byte{'X', 'X', 'X'}, validHeaderBytes()[3:]...)
	_, err := ReadHeader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("ReadHeader with bad magic = nil error, want InvalidMagic")
	}
	if gifErr, ok := err.(*Error); !ok || gifErr.Kind != KindInvalidMagic {
		t.Fatalf("ReadHeader error = %v, want KindInvalidMagic", err)
	}
}

func TestReadHeaderRejectsUnsupportedVersion(t *testing.T) {
	data := validHeaderBytes()
	data[3], data[4], data[5] = '8', '7', 'a'
	_, err := ReadHeader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("ReadHeader with 87a version = nil error, want UnsupportedFormat")
	}
	if gifErr, ok := err.(*Error); !ok || gifErr.Kind != KindUnsupportedFormat {
		t.Fatalf("ReadHeader error = %v, want KindUnsupportedFormat", err)
	}
}

func TestReadHeaderRejectsMissingGlobalPalette(t *testing.T) {
	data := validHeaderBytes()
	data[10] = 0x70 // clear the GCT-present bit
	_, err := ReadHeader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("ReadHeader without GCT = nil error, want UnsupportedFormat")
	}
}

func TestReadImageDescriptorRejectsZeroArea(t *testing.T) {
	data := []byte{
		0x00, 0x00, // x
		0x00, 0x00, // y
		0x00, 0x00, // w = 0
		0x01, 0x00, // h = 1
		0x00, // packed
	}
	_, err := ReadImageDescriptor(bytes.NewReader(data))
	if err == nil {
		t.Fatal("ReadImageDescriptor with zero width = nil error, want MalformedStream")
	}
}

func TestCheckRectOutOfBounds(t *testing.T) {
	screen := LogicalScreen{Width: 4, Height: 4}
	if err := CheckRect(FrameRect{X: 2, Y: 2, W: 4, H: 4}, screen); err == nil {
		t.Fatal("CheckRect with rect exceeding screen = nil error, want MalformedStream")
	}
	if err := CheckRect(FrameRect{X: 0, Y: 0, W: 4, H: 4}, screen); err != nil {
		t.Fatalf("CheckRect within bounds: %v", err)
	}
}

func TestImageDescriptorPackedFields(t *testing.T) {
	p := ImageDescriptorPacked(0x80 | 0x40 | 0x02) // local palette, interlace, size exp 2
	if !p.HasLocalPalette() {
		t.Fatal("HasLocalPalette() = false, want true")
	}
	if !p.Interlace() {
		t.Fatal("Interlace() = false, want true")
	}
	if got, want := p.LocalPaletteSize(), 8; got != want {
		t.Fatalf("LocalPaletteSize() = %d, want %d", got, want)
	}
}
