package comparison

import (
	"bytes"
	"fmt"
	"math"

	"github.com/cocosip/go-jpeg-huffman/codec"
	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
	"github.com/icza/bitio"
)

// UnstuffedCodec uses the same header and canonical code as the DHT
// codec but packs the payload with a plain bit writer: no 0xFF 0x00
// stuffing and zero padding. The size difference between the two is
// what JPEG byte stuffing costs.
type UnstuffedCodec struct{}

// NewUnstuffedCodec creates a new unstuffed Huffman codec
func NewUnstuffedCodec() *UnstuffedCodec {
	return &UnstuffedCodec{}
}

// Encode writes the DHT header followed by the unstuffed payload
func (c *UnstuffedCodec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.Options != nil {
		return nil, fmt.Errorf("%w: unstuffed codec takes no options", codec.ErrInvalidParameter)
	}

	data := params.Data
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", huffman.ErrTooManySymbols, len(data))
	}

	freq := huffman.CountFrequencies(data)
	table, err := huffman.BuildTable(&freq, nil)
	if err != nil {
		return nil, err
	}
	header, err := huffman.NewHeader(table, uint32(len(data)))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := header.WriteTo(&buf); err != nil {
		return nil, err
	}

	enc := huffman.NewEncoder(table)
	w := bitio.NewWriter(&buf)
	for i, s := range data {
		code, ok := enc.Code(s)
		if !ok {
			return nil, fmt.Errorf("%w: %#02x at offset %d", huffman.ErrSymbolNotCoded, s, i)
		}
		w.TryWriteBits(uint64(code.Code), uint8(code.Len))
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads the header and decodes the payload one bit at a time
// against the per-length first codes of the canonical table
func (c *UnstuffedCodec) Decode(data []byte) (*codec.DecodeResult, error) {
	r := bytes.NewReader(data)
	header, err := huffman.ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.TotalCodes() == 0 {
		return &codec.DecodeResult{Data: []byte{}}, nil
	}

	var firstCode, firstIndex [huffman.MaxCodeLength]int
	next, index := 0, 0
	for l, n := range header.Counts {
		firstCode[l], firstIndex[l] = next, index
		next = (next + int(n)) << 1
		index += int(n)
	}

	// Every symbol takes at least one bit
	if uint64(header.NumSymbols) > 8*uint64(r.Len()) {
		return nil, fmt.Errorf("%w: %d symbols in %d bytes", ErrCorruptBlock, header.NumSymbols, r.Len())
	}

	br := bitio.NewReader(r)
	out := make([]byte, 0, header.NumSymbols)
	for i := uint32(0); i < header.NumSymbols; i++ {
		code := 0
		for l := 0; ; l++ {
			if l == huffman.MaxCodeLength {
				return nil, fmt.Errorf("%w: invalid code at symbol %d", ErrCorruptBlock, i)
			}
			bit, err := br.ReadBool()
			if err != nil {
				return nil, fmt.Errorf("%w: payload ends at symbol %d: %w", ErrCorruptBlock, i, err)
			}
			code <<= 1
			if bit {
				code |= 1
			}
			if offset := code - firstCode[l]; offset >= 0 && offset < int(header.Counts[l]) {
				out = append(out, header.Symbols[firstIndex[l]+offset])
				break
			}
		}
	}
	return &codec.DecodeResult{Data: out}, nil
}

// ID returns the stream format identifier
func (c *UnstuffedCodec) ID() string {
	return "dht-raw"
}

// Name returns the human-readable name
func (c *UnstuffedCodec) Name() string {
	return "dht-unstuffed"
}

func init() {
	codec.Register(NewUnstuffedCodec())
}
