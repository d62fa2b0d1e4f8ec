package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.dht")
	data := []byte("AAAABBBCC")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	if err := run([]string{"-v", in, out}, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}

	encoded, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != 30 {
		t.Errorf("output is %d bytes, want 30", len(encoded))
	}
	decoded, err := huffman.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("Decode = %q, want %q", decoded, data)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.dht")

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{empty}},
		{"missing input", []string{filepath.Join(dir, "missing"), out}},
		{"empty input", []string{empty, out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if err := run(tt.args, &stderr); err == nil {
				t.Fatal("run succeeded, want an error")
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output file exists after a failed run")
			}
		})
	}
}
