package huffman

import (
	"fmt"
	"io"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
	"github.com/cocosip/go-jpeg-huffman/jpeg/standard"
)

const (
	// HeaderSize is the fixed part of a DHT segment: marker, length,
	// table class/id and 16 counts
	HeaderSize = 21

	// Segment length bounds: length field, class/id, counts, symbols
	minSegmentLength = 19
	maxSegmentLength = 19 + 256
)

// Header is a DHT segment followed by the number of symbols to decode.
// The trailing count is not part of JPEG; it makes the stream self-describing.
type Header struct {
	// Number of codes of each length (1-16 bits)
	Counts [MaxCodeLength]uint8

	// Symbols ordered by code length, then by code
	Symbols []byte

	// Number of symbols in the entropy-coded data
	NumSymbols uint32
}

// NewHeader creates the header describing t
func NewHeader(t *Table, numSymbols uint32) (*Header, error) {
	h := &Header{
		Symbols:    t.Symbols(),
		NumSymbols: numSymbols,
	}
	for i, n := range t.CodesPerLen {
		// A count is one byte. BuildTable never fills a class past it.
		if n > 255 {
			return nil, fmt.Errorf("%w: %d codes of length %d", ErrCountOverflow, n, i+1)
		}
		h.Counts[i] = uint8(n)
	}
	return h, nil
}

// TotalCodes returns the sum of the 16 counts
func (h *Header) TotalCodes() int {
	total := 0
	for _, n := range h.Counts {
		total += int(n)
	}
	return total
}

// SegmentLength returns the DHT length field
func (h *Header) SegmentLength() uint16 {
	return uint16(minSegmentLength + h.TotalCodes())
}

// WriteTo writes the DHT segment and the symbol count
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	total := h.TotalCodes()
	if total != len(h.Symbols) {
		return 0, fmt.Errorf("%w: counts sum to %d, have %d symbols", ErrSymbolCount, total, len(h.Symbols))
	}

	// Create DHT segment data
	data := make([]byte, 1+MaxCodeLength+total)
	data[0] = 0 // Table class and ID
	copy(data[1:], h.Counts[:])
	copy(data[1+MaxCodeLength:], h.Symbols)

	sw := standard.NewWriter(w)
	if err := sw.WriteSegment(common.MarkerDHT, data); err != nil {
		return sw.Written(), fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}
	if err := sw.WriteUint32(h.NumSymbols); err != nil {
		return sw.Written(), fmt.Errorf("%w: writing symbol count: %w", ErrIO, err)
	}
	return sw.Written(), nil
}

// ReadHeader parses a DHT segment and the symbol count that follows it.
// A header without codes is valid and has nothing after it.
// ReadHeader reads exactly the header bytes from r.
func ReadHeader(r io.Reader) (*Header, error) {
	sr := standard.NewReader(r)

	marker, err := sr.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading marker: %w", ErrIO, err)
	}
	if marker != common.MarkerDHT {
		return nil, fmt.Errorf("%w: got %#04x", ErrInvalidMarker, marker)
	}

	length, err := sr.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("%w: reading segment length: %w", ErrIO, err)
	}
	if length < minSegmentLength || length > maxSegmentLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	class, err := sr.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: reading table class: %w", ErrIO, err)
	}
	if class != 0 {
		return nil, fmt.Errorf("%w: got %#02x", ErrInvalidClass, class)
	}

	h := &Header{}
	if err := sr.ReadFull(h.Counts[:]); err != nil {
		return nil, fmt.Errorf("%w: reading code counts: %w", ErrIO, err)
	}

	total := h.TotalCodes()
	if minSegmentLength+total != int(length) {
		return nil, fmt.Errorf("%w: length %d but %d symbols", ErrSymbolCount, length, total)
	}
	if total == 0 {
		return h, nil
	}

	h.Symbols = make([]byte, total)
	if err := sr.ReadFull(h.Symbols); err != nil {
		return nil, fmt.Errorf("%w: reading symbol table: %w", ErrIO, err)
	}

	h.NumSymbols, err = sr.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("%w: reading number of symbols: %w", ErrIO, err)
	}

	return h, nil
}
