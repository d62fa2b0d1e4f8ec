package huffman

import (
	"fmt"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
)

// Encoder writes symbols as their canonical codes
type Encoder struct {
	codes [256]Code
	coded [256]bool
}

// NewEncoder creates an Encoder for the codes of t.
// Symbols whose code is longer than 16 bits are left uncoded.
func NewEncoder(t *Table) *Encoder {
	e := &Encoder{}
	for _, c := range t.Codes {
		if c.Len < 1 || c.Len > MaxCodeLength {
			continue
		}
		e.codes[c.Symbol] = c
		e.coded[c.Symbol] = true
	}
	return e
}

// Code returns the code of symbol
func (e *Encoder) Code(symbol byte) (Code, bool) {
	return e.codes[symbol], e.coded[symbol]
}

// Encode writes the code of every byte of data to bw.
// The caller flushes bw when the payload is complete.
func (e *Encoder) Encode(bw *common.BitWriter, data []byte) error {
	for i, s := range data {
		c, ok := e.Code(s)
		if !ok {
			return fmt.Errorf("%w: %#02x at offset %d", ErrSymbolNotCoded, s, i)
		}
		if err := bw.WriteBits(c.Code, c.Len); err != nil {
			return fmt.Errorf("%w: writing payload: %w", ErrIO, err)
		}
	}
	return nil
}

// PayloadBits returns the number of bits Encode produces for data with
// the given frequencies, before stuffing and padding
func (e *Encoder) PayloadBits(freq *Frequencies) uint64 {
	var bits uint64
	for s, n := range freq {
		if n != 0 && e.coded[s] {
			bits += uint64(n) * uint64(e.codes[s].Len)
		}
	}
	return bits
}
