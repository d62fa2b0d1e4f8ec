package codec

// Codec is the universal interface for all byte-stream codecs
type Codec interface {
	// Encode compresses data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decompresses data produced by Encode
	Decode(data []byte) (*DecodeResult, error)

	// ID returns the short identifier of the stream format
	ID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	Data    []byte  // Raw input bytes
	Options Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	Data []byte // Decoded bytes
}

// BaseOptions provides common options for all codecs
type BaseOptions struct {
	// Level selects the compression level. 0 means the codec default;
	// the valid range is codec specific and checked by the codec.
	// Codecs without levels reject anything but 0.
	Level int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.Level < 0 {
		return ErrInvalidLevel
	}
	return nil
}

// ValidateRange checks that Level is 0 or within [lo, hi]
func (o *BaseOptions) ValidateRange(lo, hi int) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Level != 0 && (o.Level < lo || o.Level > hi) {
		return ErrInvalidLevel
	}
	return nil
}
