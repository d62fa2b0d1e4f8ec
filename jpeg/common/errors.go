package common

import "errors"

// Common errors
var (
	ErrInvalidMarker   = errors.New("invalid JPEG marker")
	ErrMarkerReached   = errors.New("marker reached in entropy-coded data")
	ErrInvalidBitCount = errors.New("bit count out of range (0-16)")
)
