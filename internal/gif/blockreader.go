package gif

import (
	"io"

	"golang.org/x/text/encoding/charmap"

	"github.com/cam-per/gifdec/utils"
)

const (
	sepImage    = ','
	sepExtend   = '!'
	sepTrailer  = ';'
	labelPlain  = 0x01
	labelGCE    = 0xF9
	labelCom    = 0xFE
	labelApp    = 0xFF
	netscapeID  = "NETSCAPE"
	appBlockLen = 11
)

// BlockReader drives the top-level container syntax (spec §4.2):
// `Stream := Header Palette Body; Body := { Extension | Image } Trailer`.
// Grounded on the teacher's internal/gsc.Container header/FAT reader
// in spirit (sequential binary.Read-shaped field parsing) but the
// format here streams markers rather than indexing a fixed table, so
// the walk is a loop over separator bytes rather than a lookup.
type BlockReader struct {
	r         io.Reader
	warn      WarnFunc
	LoopCount int
	HasLoop   bool
}

// NewBlockReader wraps r (positioned right after the global palette).
func NewBlockReader(r io.Reader, warn WarnFunc) *BlockReader {
	return &BlockReader{r: r, warn: warn}
}

// Next consumes zero or more extensions, updating meta from graphic
// control blocks and LoopCount/HasLoop from the Netscape application
// extension, and
// returns true once an image descriptor separator has been consumed
// (the caller must then read the image descriptor itself). Returns
// false, nil at the trailer.
func (br *BlockReader) Next(meta *FrameMeta) (bool, error) {
	for {
		sep, err := utils.ReadByte(br.r)
		if err != nil {
			return false, errIO("reading block separator", err)
		}
		switch sep {
		case sepImage:
			return true, nil
		case sepExtend:
			if err := br.readExtension(meta); err != nil {
				return false, err
			}
		case sepTrailer:
			return false, nil
		default:
			return false, errMalformed("unexpected block separator byte")
		}
	}
}

func (br *BlockReader) readExtension(meta *FrameMeta) error {
	label, err := utils.ReadByte(br.r)
	if err != nil {
		return errIO("reading extension label", err)
	}
	switch label {
	case labelPlain:
		return br.readPlainText()
	case labelGCE:
		return br.readGraphicControl(meta)
	case labelCom:
		return br.readComment()
	case labelApp:
		return br.readApplication()
	default:
		// REDESIGN (spec §9): the reference decoder (gifdec.c) reads no
		// sub-blocks for an unrecognized label, leaving the stream out
		// of sync. A conforming reader skips the chain instead.
		br.warn.warn("ignoring unknown extension label 0x%02X", label)
		return br.skipSubBlocks()
	}
}

func (br *BlockReader) readPlainText() error {
	br.warn.warn("ignoring plain text extension")
	if err := utils.Skip(br.r, 13); err != nil {
		return errIO("skipping plain text metadata", err)
	}
	return br.skipSubBlocks()
}

func (br *BlockReader) readGraphicControl(meta *FrameMeta) error {
	if _, err := utils.ReadByte(br.r); err != nil { // block size, always 4
		return errIO("reading graphic control size", err)
	}
	pack, err := utils.ReadByte(br.r)
	if err != nil {
		return errIO("reading graphic control packed byte", err)
	}
	disposal := Disposal((pack >> 2) & 0x07)
	if disposal > DisposalRestorePrevious {
		br.warn.warn("reserved disposal method %d treated as unspecified", disposal)
		disposal = DisposalUnspecified
	}
	meta.Disposal = disposal
	meta.UserInput = pack&0x02 != 0
	meta.Transparent = pack&0x01 != 0

	delay, err := utils.ReadUint16LE(br.r)
	if err != nil {
		return errIO("reading graphic control delay", err)
	}
	meta.DelayCS = delay

	tIdx, err := utils.ReadByte(br.r)
	if err != nil {
		return errIO("reading transparent color index", err)
	}
	meta.TransparentIndex = tIdx

	if _, err := utils.ReadByte(br.r); err != nil { // block terminator
		return errIO("reading graphic control terminator", err)
	}
	return nil
}

func (br *BlockReader) readComment() error {
	text, err := br.collectSubBlocks()
	if err != nil {
		return err
	}
	if br.warn != nil {
		br.warn("comment: %s", utils.RawText(text).Decode(charmap.ISO8859_1))
	}
	return nil
}

func (br *BlockReader) readApplication() error {
	if _, err := utils.ReadByte(br.r); err != nil { // block size, always 11
		return errIO("reading application block size", err)
	}
	ident := make([]byte, 8)
	if _, err := io.ReadFull(br.r, ident); err != nil {
		return errIO("reading application identifier", err)
	}
	auth := make([]byte, 3)
	if _, err := io.ReadFull(br.r, auth); err != nil {
		return errIO("reading application auth code", err)
	}
	if string(ident) != netscapeID {
		br.warn.warn("ignoring application extension %q", utils.RawText(ident).Decode(charmap.ISO8859_1))
		return br.skipSubBlocks()
	}
	if _, err := utils.ReadByte(br.r); err != nil { // sub-block length, always 3
		return errIO("reading netscape sub-block length", err)
	}
	if _, err := utils.ReadByte(br.r); err != nil { // constant 0x01
		return errIO("reading netscape constant byte", err)
	}
	loop, err := utils.ReadUint16LE(br.r)
	if err != nil {
		return errIO("reading netscape loop count", err)
	}
	if _, err := utils.ReadByte(br.r); err != nil { // terminator
		return errIO("reading netscape terminator", err)
	}
	br.LoopCount = int(loop)
	br.HasLoop = true
	return nil
}

// skipSubBlocks discards a length-prefixed sub-block chain.
func (br *BlockReader) skipSubBlocks() error {
	for {
		n, err := utils.ReadByte(br.r)
		if err != nil {
			return errIO("reading sub-block length", err)
		}
		if n == 0 {
			return nil
		}
		if err := utils.Skip(br.r, int64(n)); err != nil {
			return errIO("skipping sub-block", err)
		}
	}
}

// collectSubBlocks reads a length-prefixed sub-block chain into one
// buffer, for extensions whose payload is worth surfacing (Comment).
func (br *BlockReader) collectSubBlocks() ([]byte, error) {
	var out []byte
	for {
		n, err := utils.ReadByte(br.r)
		if err != nil {
			return nil, errIO("reading sub-block length", err)
		}
		if n == 0 {
			return out, nil
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(br.r, buf); err != nil {
			return nil, errIO("reading sub-block data", err)
		}
		out = append(out, buf...)
	}
}
