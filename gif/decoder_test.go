package gif

import (
	"bytes"
	"io"
	"testing"
)

func header1x1(fdsz byte) []byte {
	return []byte{
		'G', 'I', 'F', '8', '9', 'a',
		0x01, 0x00, // width = 1
		0x01, 0x00, // height = 1
		fdsz,
		0x00, 0x00, // background, aspect
	}
}

// onePixelImage is one full image block: descriptor + LZW data for a
// single white pixel (palette index 1) over a 1x1 rect, reusing the S1
// fixture (CLEAR 1 STOP at min code size 2).
func onePixelImage() []byte {
	return []byte{
		',',
		0x00, 0x00, // x
		0x00, 0x00, // y
		0x01, 0x00, // w
		0x01, 0x00, // h
		0x00,                         // packed: no local palette, no interlace
		0x02,                         // min LZW code size
		0x02, 0x4C, 0x01,             // sub-block: len 2, data
		0x00, // terminator
	}
}

func TestDecoderMinimalFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(header1x1(0xF0)) // 2-color global palette
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})
	buf.Write(onePixelImage())
	buf.WriteByte(';')

	dec, err := Open(&buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	frame, err := dec.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame: %v", err)
	}
	if len(frame.Pix) != 1 || frame.Pix[0] != 1 {
		t.Fatalf("Pix = %v, want [1]", frame.Pix)
	}
	if frame.Width != 1 || frame.Height != 1 {
		t.Fatalf("dims = %dx%d, want 1x1", frame.Width, frame.Height)
	}

	if _, err := dec.NextFrame(); err != io.EOF {
		t.Fatalf("second NextFrame = %v, want io.EOF", err)
	}
}

// TestDecoderFrameMetaDelayResetsPerFrame is scenario S5: a graphic
// control extension with delay=10 appears only before the second
// frame, so FrameMeta.DelayCS must read 0 on the first frame and 10 on
// the second.
func TestDecoderFrameMetaDelayResetsPerFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(header1x1(0xF0))
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})
	buf.Write(onePixelImage())
	buf.Write([]byte{
		'!', 0xF9, // graphic control extension
		0x04,
		0x00,       // packed: no disposal, no input, not transparent
		0x0A, 0x00, // delay = 10
		0x00, // transparent index
		0x00, // terminator
	})
	buf.Write(onePixelImage())
	buf.WriteByte(';')

	dec, err := Open(&buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first, err := dec.NextFrame()
	if err != nil {
		t.Fatalf("first NextFrame: %v", err)
	}
	if first.Meta.DelayCS != 0 {
		t.Fatalf("first frame DelayCS = %d, want 0", first.Meta.DelayCS)
	}

	second, err := dec.NextFrame()
	if err != nil {
		t.Fatalf("second NextFrame: %v", err)
	}
	if second.Meta.DelayCS != 10 {
		t.Fatalf("second frame DelayCS = %d, want 10", second.Meta.DelayCS)
	}

	if _, err := dec.NextFrame(); err != io.EOF {
		t.Fatalf("third NextFrame = %v, want io.EOF", err)
	}
}

func TestDecoderRejectsBadMagic(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte("not-a-gif-stream-at-all")))
	if err == nil {
		t.Fatal("Open with garbage header = nil error, want InvalidMagic")
	}
	gifErr, ok := err.(*Error)
	if !ok || gifErr.Kind != KindInvalidMagic {
		t.Fatalf("Open error = %v, want KindInvalidMagic", err)
	}
}

func TestDecoderPoisonsAfterError(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(header1x1(0xF0))
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})
	// Truncate right after the palette: the first NextFrame call fails
	// trying to read a block separator.
	dec, err := Open(&buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := dec.NextFrame(); err == nil {
		t.Fatal("NextFrame on truncated stream = nil error, want an error")
	}
	if _, err := dec.NextFrame(); err != errSentinelPoisoned {
		t.Fatalf("second NextFrame = %v, want errSentinelPoisoned", err)
	}
}

func TestDecoderCloseThenNextFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(header1x1(0xF0))
	buf.Write([]byte{0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF})
	buf.WriteByte(';')

	dec, err := Open(&buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := dec.NextFrame(); err != errSentinelClosed {
		t.Fatalf("NextFrame after Close = %v, want errSentinelClosed", err)
	}
}
