package comparison

import "errors"

var (
	// ErrCorruptBlock is returned when a huff0 block frame cannot be parsed
	ErrCorruptBlock = errors.New("corrupt block")

	// ErrRoundTrip is returned when a codec does not reproduce its input
	ErrRoundTrip = errors.New("round trip mismatch")
)
