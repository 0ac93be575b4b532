package utils

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
)

// RawText is a byte-oriented legacy text field: an 8-bit charmap encoding
// with no promise of being valid UTF-8 on its own, optionally NUL-padded.
type RawText []byte

func (r RawText) trimmed() []byte {
	i := bytes.IndexByte(r, 0)
	if i == -1 {
		return r
	} else if i == 0 {
		return nil
	}
	return r[:i]
}

func (r RawText) String() string { return string(r.trimmed()) }

// Decode converts r through the given 8-bit charmap into valid UTF-8,
// falling back to the raw bytes verbatim if the charmap rejects them.
func (r RawText) Decode(encoding *charmap.Charmap) string {
	buf, err := encoding.NewDecoder().Bytes(r.trimmed())
	if err != nil {
		return r.String()
	}
	return string(buf)
}
