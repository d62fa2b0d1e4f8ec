package huffman

import (
	"fmt"
	"math/big"
)

// MaxCodeLength is the longest code a DHT segment can describe
const MaxCodeLength = 16

// Code is one entry of a canonical code table
type Code struct {
	Symbol byte
	Code   uint16 // valid only when 1 <= Len <= MaxCodeLength
	Len    int
}

// Table is a canonical Huffman code built from frequencies
type Table struct {
	// Codes in ascending symbol order, one per symbol with a nonzero count
	Codes []Code

	// Number of codes of each length (1-16 bits)
	CodesPerLen [MaxCodeLength]int

	// Number of symbols that received a code of at most 16 bits
	NumCodes int

	// Shortest and longest code length among coded symbols
	MinBits int
	MaxBits int

	// Deepest leaf of the tree; greater than MaxBits when codes overflowed
	LongestLen int
}

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

// node is an element of the tree arena. Children are arena indices.
type node struct {
	kind  nodeKind
	count uint64
	code  int // leaf: index into Table.Codes
	left  int // internal: arena index
	right int // internal: arena index
}

// BuildTable builds a canonical Huffman code from freq.
// Codes longer than 16 bits are not limited: they are logged and left
// without a code, or rejected with ErrCodeTooLong when params is strict.
// A balanced 256-symbol tree puts 256 codes in one length class, which a
// one-byte DHT count cannot hold; the last code of that class is moved one
// bit deeper, or ErrCountOverflow is returned when params is strict.
func BuildTable(freq *Frequencies, params *Parameters) (*Table, error) {
	if freq == nil {
		return nil, ErrNoSymbols
	}

	t := &Table{}
	for s, c := range freq {
		if c != 0 {
			t.Codes = append(t.Codes, Code{Symbol: byte(s)})
		}
	}
	if len(t.Codes) == 0 {
		return nil, ErrNoSymbols
	}

	assignLengths(freq, t.Codes)

	overflow := 0
	for _, c := range t.Codes {
		if c.Len > t.LongestLen {
			t.LongestLen = c.Len
		}
		if c.Len > MaxCodeLength {
			overflow++
		}
	}

	log := params.logger()
	if overflow > 0 {
		if params.strict() {
			return nil, fmt.Errorf("%w: %d symbols, longest %d bits", ErrCodeTooLong, overflow, t.LongestLen)
		}
		log.Warn("huffman: code length over 16",
			"symbols", overflow,
			"longest", t.LongestLen)
	}

	if l, n := t.fullLengthClass(); n > 0 {
		if params.strict() {
			return nil, fmt.Errorf("%w: %d codes of length %d", ErrCountOverflow, n, l)
		}
		symbol := t.demoteLast(l)
		log.Warn("huffman: 256 codes of one length",
			"length", l,
			"symbol", symbol)
	}

	t.assignCanonical()

	log.Debug("huffman: table built",
		"symbols", len(t.Codes),
		"codes", t.NumCodes,
		"minBits", t.MinBits,
		"maxBits", t.MaxBits,
		"codesPerLen", t.CodesPerLen)

	return t, nil
}

// assignLengths sets Len of every code to its leaf depth.
// The active list mirrors an in-place array: the merged node takes the
// slot of the first minimum and the last active node fills the slot of
// the second. Scan order decides ties, so it must not change.
func assignLengths(freq *Frequencies, codes []Code) {
	if len(codes) == 1 {
		// A lone symbol still needs one bit
		codes[0].Len = 1
		return
	}

	nodes := make([]node, 0, 2*len(codes)-1)
	active := make([]int, 0, len(codes))
	for i, c := range codes {
		nodes = append(nodes, node{kind: leafNode, count: uint64(freq[c.Symbol]), code: i})
		active = append(active, i)
	}

	for len(active) > 2 {
		min1, min2 := minNodes(nodes, active)
		left, right := active[min1], active[min2]

		nodes = append(nodes, node{
			kind:  internalNode,
			count: nodes[left].count + nodes[right].count,
			left:  left,
			right: right,
		})

		last := len(active) - 1
		active[min1] = len(nodes) - 1
		active[min2] = active[last]
		active = active[:last]
	}

	// The last two nodes are the children of the root
	type visit struct {
		idx   int
		depth int
	}
	stack := []visit{{active[0], 1}, {active[1], 1}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &nodes[v.idx]
		if n.kind == leafNode {
			codes[n.code].Len = v.depth
			continue
		}
		stack = append(stack, visit{n.left, v.depth + 1}, visit{n.right, v.depth + 1})
	}
}

// minNodes returns the active positions of the two lowest counts.
// The first is the leftmost minimum; the second is the leftmost minimum
// of the remaining nodes.
func minNodes(nodes []node, active []int) (int, int) {
	index1 := 0
	count1 := nodes[active[0]].count
	for i := 1; i < len(active); i++ {
		if c := nodes[active[i]].count; count1 > c {
			count1 = c
			index1 = i
		}
	}

	index2 := 0
	if index1 == 0 {
		index2 = 1
	}
	count2 := nodes[active[index2]].count
	for i := 1; i < len(active); i++ {
		if c := nodes[active[i]].count; count2 > c && i != index1 {
			count2 = c
			index2 = i
		}
	}

	return index1, index2
}

// fullLengthClass returns the first length whose class holds more codes
// than a DHT count byte can store, and the size of that class
func (t *Table) fullLengthClass() (int, int) {
	var perLen [MaxCodeLength + 1]int
	for _, c := range t.Codes {
		if c.Len <= MaxCodeLength {
			perLen[c.Len]++
		}
	}
	for l, n := range perLen {
		if n > 255 {
			return l, n
		}
	}
	return 0, 0
}

// demoteLast lengthens the last code of class l, in canonical order, by
// one bit and returns its symbol. The Kraft sum drops below 1 and one
// decode slot stays empty.
func (t *Table) demoteLast(l int) byte {
	for i := len(t.Codes) - 1; i >= 0; i-- {
		if t.Codes[i].Len == l {
			t.Codes[i].Len++
			if t.Codes[i].Len > t.LongestLen {
				t.LongestLen = t.Codes[i].Len
			}
			return t.Codes[i].Symbol
		}
	}
	return 0
}

// assignCanonical gives consecutive codes to each length class in
// symbol order and shifts the running code left between classes.
func (t *Table) assignCanonical() {
	code := uint32(0)
	for l := 1; l <= MaxCodeLength; l++ {
		n := 0
		for i := range t.Codes {
			if t.Codes[i].Len != l {
				continue
			}
			t.Codes[i].Code = uint16(code)
			code++
			n++
		}
		code <<= 1

		t.CodesPerLen[l-1] = n
		t.NumCodes += n
		if n > 0 {
			t.MaxBits = l
			if t.MinBits == 0 {
				t.MinBits = l
			}
		}
	}
}

// Lookup returns the code of symbol
func (t *Table) Lookup(symbol byte) (Code, bool) {
	for _, c := range t.Codes {
		if c.Symbol == symbol {
			return c, c.Len <= MaxCodeLength
		}
	}
	return Code{}, false
}

// Lengths returns the code length of every symbol, 0 for unused symbols
func (t *Table) Lengths() [256]uint8 {
	var lengths [256]uint8
	for _, c := range t.Codes {
		lengths[c.Symbol] = uint8(c.Len)
	}
	return lengths
}

// Symbols returns the coded symbols ordered by length, then by code
func (t *Table) Symbols() []byte {
	symbols := make([]byte, 0, t.NumCodes)
	for l := 1; l <= MaxCodeLength; l++ {
		for _, c := range t.Codes {
			if c.Len == l {
				symbols = append(symbols, c.Symbol)
			}
		}
	}
	return symbols
}

// Kraft returns the exact Kraft sum over all symbols, including any
// whose length exceeds 16 bits. A tree built by BuildTable sums to 1
// unless it has a single symbol.
func (t *Table) Kraft() *big.Rat {
	sum := new(big.Rat)
	for _, c := range t.Codes {
		denom := new(big.Int).Lsh(big.NewInt(1), uint(c.Len))
		sum.Add(sum, new(big.Rat).SetFrac(big.NewInt(1), denom))
	}
	return sum
}
