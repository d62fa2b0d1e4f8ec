package huffman_test

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
)

func ExampleEncode() {
	encoded, err := huffman.Encode([]byte("AAAABBBCC"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(encoded))
	fmt.Printf("% X\n", encoded[len(encoded)-2:])

	decoded, err := huffman.Decode(encoded)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(decoded))
	// Output:
	// 30
	// 0A BF
	// AAAABBBCC
}

func ExampleBuildTable() {
	freq := huffman.CountFrequencies([]byte("AAAABBBCC"))
	table, err := huffman.BuildTable(&freq, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range table.Codes {
		fmt.Printf("%c %0*b\n", c.Symbol, c.Len, c.Code)
	}
	// Output:
	// A 0
	// B 10
	// C 11
}

func ExampleReadHeader() {
	encoded, _ := huffman.Encode([]byte("hello"))
	h, err := huffman.ReadHeader(bytes.NewReader(encoded))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(h.TotalCodes(), h.NumSymbols, h.SegmentLength())
	// Output:
	// 4 5 23
}
