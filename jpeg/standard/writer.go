package standard

import (
	"encoding/binary"
	"io"
)

// Writer provides utilities for writing JPEG segment data.
// It counts the bytes it writes.
type Writer struct {
	w   io.Writer
	n   int64
	buf [4]byte
}

// NewWriter creates a new JPEG writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.WriteBytes(w.buf[:2])
}

// WriteUint32 writes a 32-bit big-endian value
func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	return w.WriteBytes(w.buf[:4])
}

// WriteMarker writes a JPEG marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a segment with length
// The length field is automatically calculated and includes itself (2 bytes)
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	if err := w.WriteMarker(marker); err != nil {
		return err
	}

	// Length includes the 2 bytes for the length field itself
	length := uint16(len(data) + 2)
	if err := w.WriteUint16(length); err != nil {
		return err
	}

	return w.WriteBytes(data)
}

// WriteBytes writes raw bytes
func (w *Writer) WriteBytes(data []byte) error {
	n, err := w.w.Write(data)
	w.n += int64(n)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return err
}

// Written returns the number of bytes written so far
func (w *Writer) Written() int64 {
	return w.n
}
