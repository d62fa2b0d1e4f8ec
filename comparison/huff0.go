package comparison

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cocosip/go-jpeg-huffman/codec"
	"github.com/klauspost/compress/huff0"
)

// Block modes
const (
	blockRaw byte = iota
	blockRLE
	blockHuff1X
	blockHuff4X
)

// Huff0Codec wraps the huff0 entropy coder used inside zstd.
// huff0 works on blocks of at most huff0.BlockSizeMax bytes, so the
// input is split and each block is framed as
//
//	mode | uvarint raw length | [uvarint coded length] | data
type Huff0Codec struct{}

// NewHuff0Codec creates a new huff0 codec
func NewHuff0Codec() *Huff0Codec {
	return &Huff0Codec{}
}

// Huff0Options contains encoding options for huff0
type Huff0Options struct {
	codec.BaseOptions

	// Use4X selects the four-stream format
	Use4X bool
}

// Validate validates the options. huff0 has no levels.
func (o *Huff0Options) Validate() error {
	return o.ValidateRange(0, 0)
}

// Encode compresses data block by block
func (c *Huff0Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	use4X := false
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		opts, ok := params.Options.(*Huff0Options)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not *Huff0Options", codec.ErrInvalidParameter, params.Options)
		}
		use4X = opts.Use4X
	}

	data := params.Data
	out := make([]byte, 0, len(data)/2+16)
	for len(data) > 0 {
		n := len(data)
		if n > huff0.BlockSizeMax {
			n = huff0.BlockSizeMax
		}

		var err error
		out, err = appendBlock(out, data[:n], use4X)
		if err != nil {
			return nil, err
		}
		data = data[n:]
	}
	return out, nil
}

func appendBlock(out, block []byte, use4X bool) ([]byte, error) {
	s := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}

	var coded []byte
	var err error
	mode := blockHuff1X
	if use4X {
		mode = blockHuff4X
		coded, _, err = huff0.Compress4X(block, s)
	} else {
		coded, _, err = huff0.Compress1X(block, s)
	}

	switch {
	case errors.Is(err, huff0.ErrUseRLE):
		out = append(out, blockRLE)
		out = binary.AppendUvarint(out, uint64(len(block)))
		return append(out, block[0]), nil
	case errors.Is(err, huff0.ErrIncompressible):
		out = append(out, blockRaw)
		out = binary.AppendUvarint(out, uint64(len(block)))
		return append(out, block...), nil
	case err != nil:
		return nil, fmt.Errorf("huff0: %w", err)
	}

	out = append(out, mode)
	out = binary.AppendUvarint(out, uint64(len(block)))
	out = binary.AppendUvarint(out, uint64(len(coded)))
	return append(out, coded...), nil
}

// Decode decompresses a sequence of blocks
func (c *Huff0Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	out := make([]byte, 0, len(data)*2)

	for len(data) > 0 {
		mode := data[0]
		data = data[1:]

		rawLen, n := binary.Uvarint(data)
		if n <= 0 || rawLen > huff0.BlockSizeMax {
			return nil, fmt.Errorf("%w: bad block length", ErrCorruptBlock)
		}
		data = data[n:]

		switch mode {
		case blockRaw:
			if uint64(len(data)) < rawLen {
				return nil, fmt.Errorf("%w: raw block truncated", ErrCorruptBlock)
			}
			out = append(out, data[:rawLen]...)
			data = data[rawLen:]

		case blockRLE:
			if len(data) < 1 {
				return nil, fmt.Errorf("%w: rle block truncated", ErrCorruptBlock)
			}
			for i := uint64(0); i < rawLen; i++ {
				out = append(out, data[0])
			}
			data = data[1:]

		case blockHuff1X, blockHuff4X:
			codedLen, n := binary.Uvarint(data)
			if n <= 0 || uint64(len(data)-n) < codedLen {
				return nil, fmt.Errorf("%w: coded block truncated", ErrCorruptBlock)
			}
			data = data[n:]

			block, err := decodeBlock(data[:codedLen], int(rawLen), mode == blockHuff4X)
			if err != nil {
				return nil, err
			}
			out = append(out, block...)
			data = data[codedLen:]

		default:
			return nil, fmt.Errorf("%w: unknown mode %d", ErrCorruptBlock, mode)
		}
	}

	return &codec.DecodeResult{Data: out}, nil
}

func decodeBlock(coded []byte, rawLen int, use4X bool) ([]byte, error) {
	s, remain, err := huff0.ReadTable(coded, nil)
	if err != nil {
		return nil, fmt.Errorf("huff0: reading table: %w", err)
	}

	// Output capacity is the decoded size
	dst := make([]byte, 0, rawLen)
	var block []byte
	if use4X {
		block, err = s.Decoder().Decompress4X(dst, remain)
	} else {
		block, err = s.Decoder().Decompress1X(dst, remain)
	}
	if err != nil {
		return nil, fmt.Errorf("huff0: %w", err)
	}
	if len(block) != rawLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrCorruptBlock, len(block), rawLen)
	}
	return block, nil
}

// ID returns the stream format identifier
func (c *Huff0Codec) ID() string {
	return "huff0"
}

// Name returns the human-readable name
func (c *Huff0Codec) Name() string {
	return "huff0"
}

func init() {
	codec.Register(NewHuff0Codec())
}
