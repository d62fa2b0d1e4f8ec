package huffman

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-jpeg-huffman/codec"
)

// Codec implements the codec.Codec interface for DHT Huffman streams
type Codec struct {
	params *Parameters
}

// NewCodec creates a new DHT Huffman codec
func NewCodec() *Codec {
	return &Codec{}
}

// NewCodecWithParameters creates a DHT Huffman codec that encodes and
// decodes with params. Options.Strict still applies per call.
func NewCodecWithParameters(params *Parameters) *Codec {
	return &Codec{params: params}
}

// Options contains encoding options for DHT Huffman streams
type Options struct {
	codec.BaseOptions

	// Strict rejects codes longer than 16 bits instead of logging them
	Strict bool
}

// Validate validates the options. Huffman coding has no levels.
func (o *Options) Validate() error {
	return o.ValidateRange(0, 0)
}

// Encode encodes data with a code built from its frequencies
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	p := NewParameters()
	if c.params != nil {
		p.Strict = c.params.Strict
		p.Logger = c.params.Logger
	}
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		opts, ok := params.Options.(*Options)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not *huffman.Options", codec.ErrInvalidParameter, params.Options)
		}
		p.Strict = p.Strict || opts.Strict
	}

	var buf bytes.Buffer
	if _, err := EncodeTo(&buf, params.Data, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a DHT Huffman stream
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	out, err := DecodeWith(data, c.params)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{Data: out}, nil
}

// ID returns the stream format identifier
func (c *Codec) ID() string {
	return "dht"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "jpeg-dht-huffman"
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
