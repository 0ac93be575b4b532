package gif

import (
	"errors"
	"io"

	internalgif "github.com/cam-per/gifdec/internal/gif"
	"github.com/cam-per/gifdec/utils"
)

// Frame is one decoded frame: a view of the composited logical-screen
// raster plus the metadata needed to render it (spec §6, §4.7).
//
// Pix is a view into the Decoder's raster, not a copy: it is borrowed
// and invalidated by the next call to NextFrame, exactly as the active
// palette is (spec §5 "Shared resources").
type Frame struct {
	Pix           []byte
	Width, Height int
	Palette       Palette
	Meta          FrameMeta
	Rect          FrameRect
	LoopCount     int
	HasLoop       bool
}

// Decoder is the top-level object: it parses the header and global
// palette once at Open, then yields frames one at a time from
// NextFrame, owning the raster for the lifetime of the session
// (spec §4.7, §5).
type Decoder struct {
	r       io.Reader
	screen  internalgif.LogicalScreen
	global  internalgif.Palette
	raster  *internalgif.FrameRaster
	blocks  *internalgif.BlockReader
	warn    WarnFunc
	strict  bool

	hasPending      bool
	pendingRect     internalgif.FrameRect
	pendingDisposal internalgif.Disposal

	poisoned bool
	closed   bool
}

// Open parses the header and global palette from r and returns a
// Decoder ready to yield frames.
func Open(r io.Reader, opts ...Option) (*Decoder, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	screen, err := internalgif.ReadHeader(r)
	if err != nil {
		return nil, err
	}
	global, err := internalgif.DecodeGlobalPalette(r, screen)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		r:      r,
		screen: screen,
		global: global,
		raster: internalgif.NewFrameRaster(screen.Width, screen.Height, screen.Background),
		blocks: internalgif.NewBlockReader(r, cfg.warn),
		warn:   cfg.warn,
		strict: cfg.strict,
	}, nil
}

// NextFrame advances through zero or more extensions and one image,
// applying the previous frame's disposal first (spec §4.7). It returns
// io.EOF once the trailer has been consumed and no more frames remain.
//
// After any error the Decoder is poisoned: every subsequent call
// returns a fixed "decoder is poisoned" error without touching the
// underlying reader again (spec §7 "the caller must close it").
func (d *Decoder) NextFrame() (*Frame, error) {
	if d.closed {
		return nil, errClosed()
	}
	if d.poisoned {
		return nil, errPoisoned()
	}

	frame, err := d.nextFrame()
	if err != nil && err != io.EOF {
		d.poisoned = true
	}
	return frame, err
}

func (d *Decoder) nextFrame() (*Frame, error) {
	if d.hasPending {
		d.raster.ApplyDisposal(d.pendingRect, d.pendingDisposal, d.screen.Background)
		d.hasPending = false
	}

	var meta internalgif.FrameMeta
	hasImage, err := d.blocks.Next(&meta)
	if err != nil {
		return nil, err
	}
	if !hasImage {
		return nil, io.EOF
	}

	desc, err := internalgif.ReadImageDescriptor(d.r)
	if err != nil {
		return nil, err
	}
	if err := internalgif.CheckRect(desc.Rect, d.screen); err != nil {
		return nil, err
	}

	palette := d.global
	if desc.Packed.HasLocalPalette() {
		local, err := internalgif.DecodeLocalPalette(d.r, desc)
		if err != nil {
			return nil, err
		}
		palette = local
	}

	if meta.Disposal == internalgif.DisposalRestorePrevious {
		d.raster.SnapshotRect(desc.Rect)
	}

	minCodeSize, err := utils.ReadByte(d.r)
	if err != nil {
		return nil, errIOWrap("reading minimum LZW code size", err)
	}
	lzw, err := internalgif.NewLzwDecoder(internalgif.NewBitSource(d.r), int(minCodeSize))
	if err != nil {
		return nil, err
	}
	placer := internalgif.NewPlacer(desc.Rect, desc.Interlace)
	if err := lzw.Decode(placer, d.raster, len(palette), d.strict); err != nil {
		return nil, err
	}

	d.hasPending = true
	d.pendingRect = desc.Rect
	d.pendingDisposal = meta.Disposal

	return &Frame{
		Pix:       d.raster.Pix,
		Width:     d.screen.Width,
		Height:    d.screen.Height,
		Palette:   palette,
		Meta:      meta,
		Rect:      desc.Rect,
		LoopCount: d.blocks.LoopCount,
		HasLoop:   d.blocks.HasLoop,
	}, nil
}

// Close releases the Decoder's resources, closing the underlying
// reader if it implements io.Closer (spec §5 "the file handle ... is
// exclusively owned by the decoder").
func (d *Decoder) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if closer, ok := d.r.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Width and Height return the logical screen dimensions parsed at Open.
func (d *Decoder) Width() int  { return d.screen.Width }
func (d *Decoder) Height() int { return d.screen.Height }

// Background returns the background color index from the header.
func (d *Decoder) Background() byte { return d.screen.Background }

var errSentinelClosed = errors.New("gif: decoder is closed")
var errSentinelPoisoned = errors.New("gif: decoder is poisoned by a previous error")

func errClosed() error   { return errSentinelClosed }
func errPoisoned() error { return errSentinelPoisoned }

func errIOWrap(msg string, err error) error {
	return &Error{Kind: KindIO, Msg: msg, Err: err}
}
