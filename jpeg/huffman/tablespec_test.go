package huffman

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
)

func TestTableSpecs(t *testing.T) {
	tests := []struct {
		name    string
		spec    TableSpec
		total   int
		maxBits int
	}{
		{"DC luminance", DCLuminance, 12, 9},
		{"DC chrominance", DCChrominance, 12, 11},
		{"AC luminance", ACLuminance, 162, 16},
		{"AC chrominance", ACChrominance, 162, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.spec.Header(0)
			if h.TotalCodes() != tt.total || len(h.Symbols) != tt.total {
				t.Fatalf("TotalCodes() = %d, %d symbols, want %d", h.TotalCodes(), len(h.Symbols), tt.total)
			}

			logger, logs := newTestLogger()
			params := NewParameters()
			params.Logger = logger

			dec, err := tt.spec.Decoder(params)
			if err != nil {
				t.Fatalf("Decoder failed: %v", err)
			}
			if dec.MaxBits() != tt.maxBits {
				t.Errorf("MaxBits() = %d, want %d", dec.MaxBits(), tt.maxBits)
			}
			if dec.Complete() {
				t.Error("Complete() = true, the all-ones code is reserved")
			}
			if !strings.Contains(logs.String(), "incomplete decode table") {
				t.Errorf("missing warning in log output: %s", logs.String())
			}

			params.Strict = true
			if _, err := tt.spec.Decoder(params); !errors.Is(err, ErrIncompleteTable) {
				t.Errorf("strict Decoder error = %v, want %v", err, ErrIncompleteTable)
			}
		})
	}
}

func TestTableSpecDecode(t *testing.T) {
	tests := []struct {
		name string
		spec TableSpec
		data []byte
		want []byte
	}{
		// 00 010 011 100 101 110 1110, padded
		{"DC luminance", DCLuminance, []byte{0x13, 0x97, 0x77}, []byte{0, 1, 2, 3, 4, 5, 6}},
		// 00 01 100 1010, padded
		{"AC luminance", ACLuminance, []byte{0x19, 0x5F}, []byte{0x01, 0x02, 0x03, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := NewParameters()
			params.Logger, _ = newTestLogger()
			dec, err := tt.spec.Decoder(params)
			if err != nil {
				t.Fatalf("Decoder failed: %v", err)
			}

			out := make([]byte, len(tt.want))
			if err := dec.Decode(common.NewBitReader(bytes.NewReader(tt.data)), len(out), out); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !bytes.Equal(out, tt.want) {
				t.Errorf("Decode = %v, want %v", out, tt.want)
			}
		})
	}
}

func TestTableSpecHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if _, err := ACChrominance.Header(42).WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if buf.Len() != HeaderSize+162+4 {
		t.Errorf("header is %d bytes, want %d", buf.Len(), HeaderSize+162+4)
	}

	h, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Counts != ACChrominance.Counts || !bytes.Equal(h.Symbols, ACChrominance.Symbols) || h.NumSymbols != 42 {
		t.Error("header does not match the table")
	}
}
