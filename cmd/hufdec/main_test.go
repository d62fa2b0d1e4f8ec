package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
)

func writeEncoded(t *testing.T, dir string, data []byte) string {
	t.Helper()
	encoded, err := huffman.Encode(data)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	path := filepath.Join(dir, "in.dht")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunStdout(t *testing.T) {
	data := []byte("the rain in spain stays mainly in the plain")
	in := writeEncoded(t, t.TempDir(), data)

	var stdout, stderr bytes.Buffer
	if err := run([]string{in}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}
	if !bytes.Equal(stdout.Bytes(), data) {
		t.Errorf("stdout = %q, want %q", stdout.Bytes(), data)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte{0xFF, 0x00, 0x10}, 100)
	in := writeEncoded(t, dir, data)
	out := filepath.Join(dir, "out.bin")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-v", in, out}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("wrote %d bytes to stdout", stdout.Len())
	}

	decoded, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, data) {
		t.Errorf("decoded %d bytes, want %d", len(decoded), len(data))
	}
	if !bytes.Contains(stderr.Bytes(), []byte("300 symbols")) {
		t.Errorf("missing summary in stderr: %s", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.dht")
	if err := os.WriteFile(bad, []byte{0xFF, 0xD8, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"too many arguments", []string{bad, bad, bad}},
		{"missing input", []string{filepath.Join(dir, "missing")}},
		{"bad marker", []string{bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(tt.args, &stdout, &stderr); err == nil {
				t.Fatal("run succeeded, want an error")
			}
		})
	}
}

func TestRunTruncatedKeepsOutput(t *testing.T) {
	dir := t.TempDir()
	encoded, err := huffman.Encode(bytes.Repeat([]byte("partial output "), 2000))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	in := filepath.Join(dir, "cut.dht")
	if err := os.WriteFile(in, encoded[:len(encoded)/2], 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("new file", func(t *testing.T) {
		out := filepath.Join(dir, "new.bin")
		var stdout, stderr bytes.Buffer
		if err := run([]string{in, out}, &stdout, &stderr); !errors.Is(err, huffman.ErrTruncated) {
			t.Fatalf("run error = %v, want %v", err, huffman.ErrTruncated)
		}
		if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("output file exists after a failed decode: %v", err)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		out := filepath.Join(dir, "old.bin")
		if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer
		if err := run([]string{in, out}, &stdout, &stderr); err == nil {
			t.Fatal("run succeeded, want an error")
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "previous" {
			t.Errorf("output = %q, want it unchanged", got)
		}
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "cut.dht" && e.Name() != "old.bin" {
			t.Errorf("stray file %s left behind", e.Name())
		}
	}
}
