// Package huffman implements a canonical Huffman codec whose code table
// is stored as a JPEG DHT (Define Huffman Table) segment.
//
// An encoded stream is a DHT segment, a 4-byte big-endian count of
// symbols, and the entropy-coded data with JPEG byte stuffing:
//
//	FF C4 | length | 00 | 16 counts | symbols | count | payload
//
// Code lengths are not limited to 16 bits. A frequency table that
// produces longer codes is reported (or rejected with Parameters.Strict),
// and the affected symbols cannot be encoded.
package huffman

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
)

// Encode encodes data with a code built from its own frequencies
func Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := EncodeTo(&buf, data, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the header and entropy-coded data for data to w.
// It returns the number of bytes written.
func EncodeTo(w io.Writer, data []byte, params *Parameters) (int64, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrTooManySymbols, len(data))
	}

	freq := CountFrequencies(data)
	table, err := BuildTable(&freq, params)
	if err != nil {
		return 0, err
	}

	header, err := NewHeader(table, uint32(len(data)))
	if err != nil {
		return 0, err
	}

	n, err := header.WriteTo(w)
	if err != nil {
		return n, err
	}

	enc := NewEncoder(table)
	bw := common.NewBitWriter(w)
	if err := enc.Encode(bw, data); err != nil {
		return n + bw.BytesWritten(), err
	}
	if err := bw.Flush(); err != nil {
		return n + bw.BytesWritten(), fmt.Errorf("%w: flushing payload: %w", ErrIO, err)
	}

	params.logger().Debug("huffman: encoded",
		"symbols", len(data),
		"header", n,
		"payloadBits", enc.PayloadBits(&freq),
		"payload", bw.BytesWritten())

	return n + bw.BytesWritten(), nil
}

// Decode decodes a complete encoded stream held in memory
func Decode(data []byte) ([]byte, error) {
	return DecodeWith(data, nil)
}

// DecodeWith is Decode with explicit parameters
func DecodeWith(data []byte, params *Parameters) ([]byte, error) {
	r := bytes.NewReader(data)
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if header.TotalCodes() == 0 {
		return []byte{}, nil
	}

	// Every symbol takes at least one bit
	if uint64(header.NumSymbols) > 8*uint64(r.Len()) {
		return nil, fmt.Errorf("%w: %d symbols in %d bytes", ErrTruncated, header.NumSymbols, r.Len())
	}

	dec, err := NewDecoder(header.Counts, header.Symbols, params)
	if err != nil {
		return nil, err
	}

	out := make([]byte, header.NumSymbols)
	if err := dec.Decode(common.NewBitReader(r), len(out), out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeFrom decodes an encoded stream read from r
func DecodeFrom(r io.Reader, params *Parameters) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := DecodeStream(&buf, r, params); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeStream decodes an encoded stream read from r and writes the
// symbols to w as they are decoded. It returns the number of symbols
// written. The entropy-coded data must start right after the header.
func DecodeStream(w io.Writer, r io.Reader, params *Parameters) (int64, error) {
	// Header and bit reader must share one buffer
	var src io.Reader = r
	if _, ok := r.(io.ByteReader); !ok {
		src = bufio.NewReader(r)
	}

	header, err := ReadHeader(src)
	if err != nil {
		return 0, err
	}

	log := params.logger()
	log.Debug("huffman: header parsed",
		"length", header.SegmentLength(),
		"counts", header.Counts,
		"symbols", header.NumSymbols)

	if header.TotalCodes() == 0 {
		return 0, nil
	}

	dec, err := NewDecoder(header.Counts, header.Symbols, params)
	if err != nil {
		return 0, err
	}

	br := common.NewBitReader(src)
	n, err := dec.DecodeTo(w, br, int(header.NumSymbols))
	if err != nil {
		return n, err
	}

	if marker := br.Marker(); marker != 0 {
		log.Debug("huffman: data ended at marker", "marker", fmt.Sprintf("%#04x", marker))
	} else if err := br.Err(); err != nil {
		log.Debug("huffman: data ended", "reason", err)
	}
	return n, nil
}
