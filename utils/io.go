package utils

import (
	"encoding/binary"
	"io"
)

// ReadByte reads exactly one byte from reader.
func ReadByte(reader io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(reader, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16LE reads a little-endian 16-bit unsigned integer.
func ReadUint16LE(reader io.Reader) (uint16, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// Skip discards n bytes from reader without requiring it to be a Seeker.
func Skip(reader io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, reader, n)
	return err
}
