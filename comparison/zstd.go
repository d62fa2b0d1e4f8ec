package comparison

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cocosip/go-jpeg-huffman/codec"
	"github.com/klauspost/compress/zstd"
)

// zstd encoders are expensive to create, keep one pool per level
var zstdEncPools sync.Map // zstd.EncoderLevel -> *sync.Pool

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil
		}
		return dec
	},
}

func zstdEncPool(level zstd.EncoderLevel) *sync.Pool {
	if p, ok := zstdEncPools.Load(level); ok {
		return p.(*sync.Pool)
	}
	p, _ := zstdEncPools.LoadOrStore(level, &sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1))
			if err != nil {
				return nil
			}
			return enc
		},
	})
	return p.(*sync.Pool)
}

// ZstdCodec compresses with Zstandard
type ZstdCodec struct{}

// NewZstdCodec creates a new zstd codec
func NewZstdCodec() *ZstdCodec {
	return &ZstdCodec{}
}

// ZstdOptions contains encoding options for zstd.
// Level follows the zstd command line scale (1-22).
type ZstdOptions struct {
	codec.BaseOptions
}

// Validate validates the options
func (o *ZstdOptions) Validate() error {
	return o.ValidateRange(1, 22)
}

// Encode compresses data into a single zstd frame
func (c *ZstdCodec) Encode(params codec.EncodeParams) ([]byte, error) {
	level := zstd.SpeedDefault
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, err
		}
		opts, ok := params.Options.(*ZstdOptions)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not *ZstdOptions", codec.ErrInvalidParameter, params.Options)
		}
		if opts.Level != 0 {
			level = zstd.EncoderLevelFromZstd(opts.Level)
		}
	}

	if len(params.Data) == 0 {
		return []byte{}, nil
	}

	pool := zstdEncPool(level)
	enc, ok := pool.Get().(*zstd.Encoder)
	if !ok || enc == nil {
		return nil, fmt.Errorf("zstd: creating encoder at level %s", level)
	}
	defer pool.Put(enc)

	return enc.EncodeAll(params.Data, make([]byte, 0, len(params.Data)/2)), nil
}

// Decode decompresses a zstd stream
func (c *ZstdCodec) Decode(data []byte) (*codec.DecodeResult, error) {
	if len(data) == 0 {
		return &codec.DecodeResult{Data: []byte{}}, nil
	}

	dec, ok := zstdDecPool.Get().(*zstd.Decoder)
	if !ok || dec == nil {
		return nil, errors.New("zstd: creating decoder")
	}
	defer zstdDecPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &codec.DecodeResult{Data: out}, nil
}

// ID returns the stream format identifier
func (c *ZstdCodec) ID() string {
	return "zstd"
}

// Name returns the human-readable name
func (c *ZstdCodec) Name() string {
	return "zstd"
}

func init() {
	codec.Register(NewZstdCodec())
}
