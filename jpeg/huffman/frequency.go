package huffman

// Frequencies holds the occurrence count of every byte value
type Frequencies [256]uint32

// CountFrequencies tabulates symbol counts over data.
// Empty input yields an all-zero table.
func CountFrequencies(data []byte) Frequencies {
	var freq Frequencies
	for _, b := range data {
		freq[b]++
	}
	return freq
}

// Symbols returns the number of symbols with a nonzero count
func (f *Frequencies) Symbols() int {
	n := 0
	for _, c := range f {
		if c != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts
func (f *Frequencies) Total() uint64 {
	var sum uint64
	for _, c := range f {
		sum += uint64(c)
	}
	return sum
}
