package comparison

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cocosip/go-jpeg-huffman/codec"
)

// BrotliCodec compresses with Brotli
type BrotliCodec struct{}

// NewBrotliCodec creates a new brotli codec
func NewBrotliCodec() *BrotliCodec {
	return &BrotliCodec{}
}

// BrotliOptions contains encoding options for brotli.
// Level 0 selects brotli.DefaultCompression; 1-11 are used as given.
type BrotliOptions struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *BrotliOptions) Validate() error {
	return o.ValidateRange(1, brotli.BestCompression)
}

// Encode compresses data
func (c *BrotliCodec) Encode(params codec.EncodeParams) ([]byte, error) {
	level := brotli.DefaultCompression
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		opts, ok := params.Options.(*BrotliOptions)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not *BrotliOptions", codec.ErrInvalidParameter, params.Options)
		}
		if opts.Level != 0 {
			level = opts.Level
		}
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(params.Data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("brotli: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses a brotli stream
func (c *BrotliCodec) Decode(data []byte) (*codec.DecodeResult, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("brotli: %w", err)
	}
	return &codec.DecodeResult{Data: out}, nil
}

// ID returns the stream format identifier
func (c *BrotliCodec) ID() string {
	return "br"
}

// Name returns the human-readable name
func (c *BrotliCodec) Name() string {
	return "brotli"
}

func init() {
	codec.Register(NewBrotliCodec())
}
