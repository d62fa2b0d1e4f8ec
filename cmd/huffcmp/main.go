// Command huffcmp compares the DHT Huffman codec with huff0, zstd and
// brotli on one or more files.
//
// Usage:
//
//	huffcmp [-codecs dht,zstd] <file>...
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cocosip/go-jpeg-huffman/comparison"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "huffcmp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("huffcmp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	codecs := fs.String("codecs", "", "comma-separated codec names or IDs (default: all)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: huffcmp [options] <file>...\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	var names []string
	if *codecs != "" {
		names = strings.Split(*codecs, ",")
	}

	failed := false
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		results, err := comparison.Compare(data, names...)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "%s (%d bytes)\n", path, len(data))
		if err := comparison.WriteReport(stdout, results); err != nil {
			return err
		}
		fmt.Fprintln(stdout)

		for _, r := range results {
			if r.Err != nil {
				failed = true
			}
		}
	}

	if failed {
		return fmt.Errorf("some codecs failed")
	}
	return nil
}
