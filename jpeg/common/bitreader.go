package common

import (
	"bufio"
	"errors"
	"io"
)

// BitReader reads entropy-coded data bit by bit, MSB first.
// A 0xFF byte followed by 0x00 is a literal 0xFF; 0xFF followed by any
// other byte is a marker and ends the data.
type BitReader struct {
	r       io.ByteReader
	buffer  byte   // remaining bits of the current byte, MSB aligned
	nBits   int    // number of bits left in buffer
	marker  uint16 // marker that ended the data, 0 if none
	count   int64  // bits delivered so far
	readErr error  // sticky read error
}

// NewBitReader creates a new BitReader.
// If r does not implement io.ByteReader it is wrapped in a bufio.Reader,
// which may read ahead of the entropy-coded data.
func NewBitReader(r io.Reader) *BitReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &BitReader{r: br}
}

// ReadBit reads a single bit
func (d *BitReader) ReadBit() (uint8, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}

	if d.nBits == 0 {
		b, err := d.r.ReadByte()
		if err != nil {
			d.readErr = err
			return 0, err
		}

		// Handle byte stuffing (0xFF followed by 0x00)
		if b == MarkerPrefix {
			b2, err := d.r.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				d.readErr = err
				return 0, err
			}
			if b2 != StuffByte {
				d.marker = uint16(MarkerPrefix)<<8 | uint16(b2)
				d.readErr = ErrMarkerReached
				return 0, ErrMarkerReached
			}
		}

		d.buffer = b
		d.nBits = 8
	}

	bit := d.buffer >> 7
	d.buffer <<= 1
	d.nBits--
	d.count++
	return bit, nil
}

// ReadBits reads n bits (0-16) and composes them MSB first.
// It returns the number of bits actually read; on error bits holds
// those bits right-aligned.
func (d *BitReader) ReadBits(n int) (bits uint16, read int, err error) {
	if n < 0 || n > 16 {
		return 0, 0, ErrInvalidBitCount
	}

	for read < n {
		bit, err := d.ReadBit()
		if err != nil {
			return bits, read, err
		}
		bits = bits<<1 | uint16(bit)
		read++
	}

	return bits, read, nil
}

// Marker returns the marker that terminated the data, or 0.
func (d *BitReader) Marker() uint16 {
	return d.marker
}

// BitsRead returns the number of bits delivered so far.
func (d *BitReader) BitsRead() int64 {
	return d.count
}

// Err returns the sticky read error, if any.
func (d *BitReader) Err() error {
	return d.readErr
}

// IsStreamEnd reports whether err means the entropy-coded data ended:
// the underlying stream ran out or a marker was reached.
func IsStreamEnd(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, ErrMarkerReached)
}
