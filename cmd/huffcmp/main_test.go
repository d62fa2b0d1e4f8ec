package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	data := bytes.Repeat([]byte("a man a plan a canal panama "), 100)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-codecs", "dht,huff0", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\n%s", err, stderr.String())
	}

	report := stdout.String()
	for _, want := range []string{"sample.txt (2800 bytes)", "jpeg-dht-huffman", "huff0"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "brotli") {
		t.Errorf("report includes an unselected codec:\n%s", report)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Error("run without files succeeded")
	}

	path := filepath.Join(t.TempDir(), "x")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-codecs", "lzw", path}, &stdout, &stderr); err == nil {
		t.Error("run with an unknown codec succeeded")
	}
}
