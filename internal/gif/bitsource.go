package gif

import (
	"io"

	"github.com/cam-per/gifdec/utils"
)

// BitSource pulls variable-width, LSB-first codes out of a sub-block
// chain, crossing sub-block and byte boundaries transparently. Grounded
// on gifdec.c's get_key and on the bit-flag countdown loop in the
// teacher's gsc/lzstd.Decoder.Read (same "refill a byte once the
// current one is exhausted" shape, generalized here from single flag
// bits to multi-bit codes).
type BitSource struct {
	r      io.Reader
	subLen uint8
	shift  uint8
	cur    byte
}

// NewBitSource wraps r, which must be positioned at the first sub-block
// length byte of an LZW data stream.
func NewBitSource(r io.Reader) *BitSource {
	return &BitSource{r: r}
}

// GetKey returns the next keySize-bit code, least-significant bit first.
func (bits *BitSource) GetKey(keySize int) (uint16, error) {
	var key uint16
	bitsRead := 0
	for bitsRead < keySize {
		rpad := (int(bits.shift) + bitsRead) % 8
		if rpad == 0 {
			if err := bits.refill(); err != nil {
				return 0, err
			}
		}
		fragSize := keySize - bitsRead
		if room := 8 - rpad; fragSize > room {
			fragSize = room
		}
		key |= uint16(bits.cur>>uint(rpad)) << uint(bitsRead)
		bitsRead += fragSize
	}
	key &= (1 << uint(keySize)) - 1
	bits.shift = uint8((int(bits.shift) + keySize) % 8)
	return key, nil
}

// refill advances to the next source byte, crossing into the next
// sub-block of the chain when the current one is exhausted.
func (bits *BitSource) refill() error {
	if bits.subLen == 0 {
		n, err := utils.ReadByte(bits.r)
		if err != nil {
			return errIO("reading sub-block length", err)
		}
		if n == 0 {
			return errMalformed("zero-length sub-block mid LZW stream")
		}
		bits.subLen = n
	}
	b, err := utils.ReadByte(bits.r)
	if err != nil {
		return errIO("reading sub-block data byte", err)
	}
	bits.cur = b
	bits.subLen--
	return nil
}

// ReadTerminator consumes the single zero-length sub-block that must
// follow the STOP code (spec §4.4, §8 invariant 4).
func (bits *BitSource) ReadTerminator() error {
	n, err := utils.ReadByte(bits.r)
	if err != nil {
		return errIO("reading sub-block terminator", err)
	}
	if n != 0 {
		return errMalformed("expected zero-length terminator after STOP")
	}
	return nil
}
