package common

// JPEG marker constants
const (
	// Marker prefix byte
	MarkerPrefix = 0xFF

	// Stuffed zero following a literal 0xFF in entropy-coded data
	StuffByte = 0x00

	// Define Huffman Table
	MarkerDHT = 0xFFC4
)
