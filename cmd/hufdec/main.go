// Command hufdec decodes a file written by huffenc.
//
// Usage:
//
//	hufdec [-strict] [-v] <input> [output]
//
// Without an output path the decoded bytes go to stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cocosip/go-jpeg-huffman/jpeg/huffman"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hufdec: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hufdec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "reject incomplete code tables")
	verbose := fs.Bool("v", false, "log header details")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hufdec [options] <input> [output]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("expected 1 or 2 arguments, got %d", fs.NArg())
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	params := huffman.NewParameters()
	params.Strict = *strict
	params.Logger = newLogger(stderr, *verbose)

	var n int64
	if fs.NArg() == 2 {
		n, err = decodeToFile(fs.Arg(1), bufio.NewReader(in), params)
	} else {
		n, err = huffman.DecodeStream(stdout, bufio.NewReader(in), params)
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", fs.Arg(0), err)
	}

	if *verbose {
		fmt.Fprintf(stderr, "%s: %d symbols\n", fs.Arg(0), n)
	}
	return nil
}

// decodeToFile decodes into a temporary file next to path and renames it
// to path once decoding succeeded. A failed decode leaves path untouched.
func decodeToFile(path string, r io.Reader, params *huffman.Parameters) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, err
	}

	n, err := huffman.DecodeStream(tmp, r, params)
	if err != nil {
		tmp.Close()
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, err
	}
	return n, os.Rename(tmp.Name(), path)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
