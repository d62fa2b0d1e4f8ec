package huffman

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// rawHeader builds DHT bytes with the given length field and class byte
func rawHeader(length uint16, class byte, counts []byte, symbols []byte, numSymbols uint32) []byte {
	buf := []byte{0xFF, 0xC4, byte(length >> 8), byte(length), class}
	var c [16]byte
	copy(c[:], counts)
	buf = append(buf, c[:]...)
	buf = append(buf, symbols...)
	buf = append(buf, byte(numSymbols>>24), byte(numSymbols>>16), byte(numSymbols>>8), byte(numSymbols))
	return buf
}

func TestHeaderRoundTrip(t *testing.T) {
	h := &Header{
		Symbols:    []byte{'x', 'y', 'z'},
		NumSymbols: 1000,
	}
	h.Counts[0] = 2
	h.Counts[2] = 1

	if h.SegmentLength() != 22 {
		t.Errorf("SegmentLength() = %d, want 22", h.SegmentLength())
	}

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(HeaderSize+3+4) || int64(buf.Len()) != n {
		t.Errorf("WriteTo wrote %d bytes (buffer %d), want %d", n, buf.Len(), HeaderSize+3+4)
	}

	raw := buf.Bytes()
	if raw[0] != 0xFF || raw[1] != 0xC4 {
		t.Errorf("marker = % X, want FF C4", raw[:2])
	}
	if raw[2] != 0x00 || raw[3] != 22 {
		t.Errorf("length field = % X, want 00 16", raw[2:4])
	}
	if raw[4] != 0 {
		t.Errorf("class/id = %#x, want 0", raw[4])
	}

	parsed, err := ReadHeader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if parsed.Counts != h.Counts {
		t.Errorf("Counts = %v, want %v", parsed.Counts, h.Counts)
	}
	if !bytes.Equal(parsed.Symbols, h.Symbols) {
		t.Errorf("Symbols = %q, want %q", parsed.Symbols, h.Symbols)
	}
	if parsed.NumSymbols != 1000 {
		t.Errorf("NumSymbols = %d, want 1000", parsed.NumSymbols)
	}
}

func TestReadHeaderErrors(t *testing.T) {
	good := rawHeader(22, 0, []byte{2, 0, 1}, []byte("xyz"), 5)

	badMarker := append([]byte(nil), good...)
	badMarker[1] = 0xC0

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"class/id byte 1", rawHeader(22, 1, []byte{2, 0, 1}, []byte("xyz"), 5), ErrInvalidClass},
		{"bad marker", badMarker, ErrInvalidMarker},
		{"length below minimum", rawHeader(18, 0, nil, nil, 0), ErrInvalidLength},
		{"length above maximum", rawHeader(19+257, 0, nil, nil, 0), ErrInvalidLength},
		{"length does not match counts", rawHeader(23, 0, []byte{2, 0, 1}, []byte("xyz"), 5), ErrSymbolCount},
		{"no symbols but length implies some", rawHeader(22, 0, nil, []byte("xyz"), 5), ErrSymbolCount},
		{"truncated fixed part", good[:10], ErrIO},
		{"truncated symbols", good[:HeaderSize+1], ErrIO},
		{"missing symbol count", good[:HeaderSize+3], ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadHeader error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != ErrIO && !errors.Is(err, ErrInvalidHeader) {
				t.Errorf("error %v is not an invalid header error", err)
			}
		})
	}
}

func TestReadHeaderShortRead(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader(nil))
	if !errors.Is(err, ErrIO) || !errors.Is(err, io.EOF) {
		t.Errorf("ReadHeader(empty) error = %v, want ErrIO wrapping io.EOF", err)
	}
}

func TestReadHeaderEmpty(t *testing.T) {
	// No codes and length 19: valid, nothing follows
	h, err := ReadHeader(bytes.NewReader(rawHeader(19, 0, nil, nil, 0)[:HeaderSize]))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.TotalCodes() != 0 || len(h.Symbols) != 0 || h.NumSymbols != 0 {
		t.Errorf("empty header = %+v", h)
	}
}

func TestNewHeaderCountOverflow(t *testing.T) {
	table := &Table{}
	for s := 0; s < 256; s++ {
		table.Codes = append(table.Codes, Code{Symbol: byte(s), Code: uint16(s), Len: 8})
	}
	table.CodesPerLen[7] = 256

	if _, err := NewHeader(table, 256); !errors.Is(err, ErrCountOverflow) {
		t.Errorf("NewHeader error = %v, want %v", err, ErrCountOverflow)
	}
}

func TestHeaderWriteToMismatch(t *testing.T) {
	h := &Header{Symbols: []byte("ab")}
	h.Counts[0] = 1
	if _, err := h.WriteTo(io.Discard); !errors.Is(err, ErrSymbolCount) {
		t.Errorf("WriteTo error = %v, want %v", err, ErrSymbolCount)
	}
}
