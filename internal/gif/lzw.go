package gif

// LzwDecoder drives the variable-width LZW state machine described in
// spec §4.6, grounded on gifdec.c's read_image_data: same CLEAR/STOP
// handling, same speculative KwKwK add-then-patch, same growable code
// width. Every pixel it decodes is written through a Placer so the
// caller's interlace handling (spec §4.3, absent from the reference
// decoder) is transparent to this state machine.
type LzwDecoder struct {
	bits        *BitSource
	table       *CodeTable
	keySize     int
	initKeySize int
	tableFull   bool
	growPending bool
}

// NewLzwDecoder builds a decoder for one image, given the minimum
// literal code size read from the stream (the single MINCODE byte that
// precedes the sub-block chain).
func NewLzwDecoder(bits *BitSource, minCodeSize int) (*LzwDecoder, error) {
	if minCodeSize < 1 || minCodeSize > 8 {
		return nil, errUnsupported("invalid minimum LZW code size")
	}
	keySize := minCodeSize + 1
	return &LzwDecoder{
		bits:        bits,
		table:       NewCodeTable(minCodeSize),
		keySize:     keySize,
		initKeySize: keySize,
	}, nil
}

// Decode expands the LZW stream into raster through placer, one pixel
// per string character. paletteSize and strict together implement the
// optional "every suffix < palette size" check from spec §4.6.
func (lzw *LzwDecoder) Decode(placer *Placer, raster *FrameRaster, paletteSize int, strict bool) error {
	clear := lzw.table.Clear()
	stop := lzw.table.Stop()

	first, err := lzw.bits.GetKey(lzw.keySize)
	if err != nil {
		return err
	}
	if int(first) != clear {
		return errMalformed("LZW stream must begin with a CLEAR code")
	}

	var (
		frmOff    int
		prevCode  int
		prevEntry entry
		strLen    int
	)
	code := int(first)

	for {
		if code == clear {
			lzw.keySize = lzw.initKeySize
			lzw.table.Reset()
			lzw.tableFull = false
		} else if !lzw.tableFull {
			switch lzw.table.Add(uint16(strLen+1), uint16(prevCode), prevEntry.suffix) {
			case growFull:
				lzw.tableFull = true
			case growWiden:
				lzw.growPending = true
			}
		}

		next, err := lzw.bits.GetKey(lzw.keySize)
		if err != nil {
			return err
		}
		c := int(next)
		if c == clear {
			code = c
			continue
		}
		if c == stop {
			break
		}
		if lzw.growPending {
			if lzw.keySize >= 12 {
				return errMalformed("LZW code size would exceed 12 bits")
			}
			lzw.keySize++
			lzw.growPending = false
		}
		if c >= lzw.table.NumEntries() {
			return errMalformed("LZW code out of range")
		}

		e := lzw.table.Entry(c)
		strLen = int(e.length)
		p := frmOff + int(e.length) - 1
		for {
			if p < 0 || p >= placer.Total() {
				return errMalformed("pixel offset out of frame rect")
			}
			if strict && int(e.suffix) >= paletteSize {
				return errMalformed("palette index out of range")
			}
			row, col := placer.Place(p)
			if err := raster.Set(row, col, e.suffix); err != nil {
				return err
			}
			if e.prefix == noPrefix {
				break
			}
			e = lzw.table.Entry(int(e.prefix))
			p--
		}

		// KwKwK fix-up: the entry speculatively added above (using the
		// previous iteration's suffix) gets its suffix corrected now
		// that we know the first character of the string just emitted.
		if c < lzw.table.NumEntries()-1 && !lzw.tableFull {
			lzw.table.SetSuffix(lzw.table.NumEntries()-1, e.suffix)
		}

		frmOff += strLen
		prevCode = c
		prevEntry = e
		code = c
	}

	return lzw.bits.ReadTerminator()
}
