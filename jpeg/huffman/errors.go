package huffman

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
)

// Construction errors
var (
	ErrNoSymbols      = errors.New("no symbols to code")
	ErrCodeTooLong    = errors.New("code length over 16 bits")
	ErrTooManySymbols = errors.New("too many symbols for a 32-bit count")
	ErrCountOverflow  = errors.New("more than 255 codes of one length")
)

// Format errors. Every one of them matches ErrInvalidHeader.
var (
	ErrInvalidHeader    = errors.New("invalid header")
	ErrInvalidMarker    = fmt.Errorf("%w: %w", ErrInvalidHeader, common.ErrInvalidMarker)
	ErrInvalidLength    = fmt.Errorf("%w: bad segment length", ErrInvalidHeader)
	ErrInvalidClass     = fmt.Errorf("%w: table class and destination must be zero", ErrInvalidHeader)
	ErrSymbolCount      = fmt.Errorf("%w: symbol count mismatch", ErrInvalidHeader)
	ErrOverlappingCodes = fmt.Errorf("%w: overlapping codes", ErrInvalidHeader)
	ErrIncompleteTable  = fmt.Errorf("%w: missing entries in decode table", ErrInvalidHeader)
)

// I/O and decoding errors
var (
	ErrIO             = errors.New("I/O failure")
	ErrReadInput      = errors.New("error while reading input")
	ErrTruncated      = fmt.Errorf("%w: entropy-coded data ended early", ErrReadInput)
	ErrInvalidCode    = fmt.Errorf("%w: code not in table", ErrReadInput)
	ErrBufferTooSmall = errors.New("buffer too small")
	ErrSymbolNotCoded = errors.New("symbol has no code")
)
