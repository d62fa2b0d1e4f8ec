package common

import "io"

// BitWriter writes entropy-coded data bit by bit, MSB first,
// inserting a stuffed 0x00 after every 0xFF byte.
type BitWriter struct {
	w        io.Writer
	buffer   byte  // pending bits, MSB aligned
	nBits    int   // number of pending bits (0-7)
	written  int64 // bytes written, stuffing included
	writeErr error // sticky write error
	out      [2]byte
}

// NewBitWriter creates a new BitWriter
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: w}
}

// WriteBit writes a single bit (only the lowest bit of bit is used)
func (e *BitWriter) WriteBit(bit uint8) error {
	if e.writeErr != nil {
		return e.writeErr
	}

	e.buffer |= (bit & 0x01) << uint(7-e.nBits)
	e.nBits++

	if e.nBits == 8 {
		b := e.buffer
		e.buffer = 0
		e.nBits = 0
		return e.writeByte(b)
	}

	return nil
}

// WriteBits writes the low n bits (0-16) of bits, MSB first
func (e *BitWriter) WriteBits(bits uint16, n int) error {
	if n < 0 || n > 16 {
		return ErrInvalidBitCount
	}

	for i := n - 1; i >= 0; i-- {
		if err := e.WriteBit(uint8(bits >> uint(i))); err != nil {
			return err
		}
	}

	return nil
}

// writeByte writes a byte with byte stuffing
func (e *BitWriter) writeByte(b byte) error {
	e.out[0] = b
	p := e.out[:1]

	// Byte stuffing: if we write 0xFF, follow with 0x00
	if b == MarkerPrefix {
		e.out[1] = StuffByte
		p = e.out[:2]
	}

	n, err := e.w.Write(p)
	e.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		e.writeErr = err
	}
	return err
}

// Flush pads a partially filled byte with 1 bits and writes it.
// Pending bits are never dropped; a complete byte is a no-op.
func (e *BitWriter) Flush() error {
	for e.nBits > 0 {
		if err := e.WriteBit(1); err != nil {
			return err
		}
	}
	return e.writeErr
}

// Pending returns the number of bits waiting for a full byte.
func (e *BitWriter) Pending() int {
	return e.nBits
}

// BytesWritten returns the number of bytes written, stuffing included.
func (e *BitWriter) BytesWritten() int64 {
	return e.written
}
