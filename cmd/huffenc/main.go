// Command huffenc encodes a file with a canonical Huffman code stored as
// a JPEG DHT segment.
//
// Usage:
//
//	huffenc [-strict] [-v] <input> <output>
//
// The output is written only when encoding succeeds.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "huffenc: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("huffenc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "fail on codes longer than 16 bits")
	verbose := fs.Bool("v", false, "log table details")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: huffenc [options] <input> <output>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	params := huffman.NewParameters()
	params.Strict = *strict
	params.Logger = newLogger(stderr, *verbose)

	var buf bytes.Buffer
	n, err := huffman.EncodeTo(&buf, data, params)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if *verbose {
		fmt.Fprintf(stderr, "%s: %d -> %d bytes\n", inPath, len(data), n)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
