package standard

import (
	"encoding/binary"
	"io"
)

// Reader provides utilities for reading JPEG segment data.
// It never reads ahead of what it is asked for, so the entropy-coded
// data that follows a segment stays in the underlying reader.
type Reader struct {
	r   io.Reader
	buf [4]byte
}

// NewReader creates a new JPEG reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	if err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	_, err := io.ReadFull(r.r, r.buf[:2])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadUint32 reads a 32-bit big-endian value
func (r *Reader) ReadUint32() (uint32, error) {
	_, err := io.ReadFull(r.r, r.buf[:4])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadFull reads exactly len(buf) bytes
func (r *Reader) ReadFull(buf []byte) error {
	_, err := io.ReadFull(r.r, buf)
	return err
}
