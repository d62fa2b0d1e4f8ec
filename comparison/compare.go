// Package comparison measures the DHT Huffman codec against
// general-purpose entropy coders registered in the codec registry.
package comparison

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/cocosip/go-jpeg-huffman/codec"
	_ "github.com/cocosip/go-jpeg-huffman/jpeg/huffman" // registers jpeg-dht-huffman
)

// Result is the outcome of one codec on one input
type Result struct {
	Name       string
	ID         string
	InputSize  int
	OutputSize int
	Ratio      float64 // OutputSize / InputSize
	Err        error
}

// Compare encodes data with the named codecs (all registered codecs when
// names is empty) and checks that each decodes back to data. A codec
// failure is recorded in its Result; an unknown name fails Compare.
func Compare(data []byte, names ...string) ([]Result, error) {
	var codecs []codec.Codec
	if len(names) == 0 {
		codecs = codec.List()
	}
	for _, name := range names {
		c, err := codec.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, name)
		}
		codecs = append(codecs, c)
	}

	results := make([]Result, 0, len(codecs))
	for _, c := range codecs {
		r := run(c, data)
		if r.Err != nil {
			slog.Debug("comparison: codec failed", "codec", r.Name, "error", r.Err)
		} else {
			slog.Debug("comparison: codec done", "codec", r.Name, "size", r.OutputSize, "ratio", r.Ratio)
		}
		results = append(results, r)
	}
	return results, nil
}

func run(c codec.Codec, data []byte) Result {
	r := Result{Name: c.Name(), ID: c.ID(), InputSize: len(data)}

	encoded, err := c.Encode(codec.EncodeParams{Data: data})
	if err != nil {
		r.Err = err
		return r
	}
	r.OutputSize = len(encoded)
	if len(data) > 0 {
		r.Ratio = float64(r.OutputSize) / float64(len(data))
	}

	decoded, err := c.Decode(encoded)
	if err != nil {
		r.Err = err
		return r
	}
	if !bytes.Equal(decoded.Data, data) {
		r.Err = fmt.Errorf("%w: got %d bytes, want %d", ErrRoundTrip, len(decoded.Data), len(data))
	}
	return r
}

// WriteReport writes results as an aligned table
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODEC\tID\tINPUT\tOUTPUT\tRATIO\tSTATUS")
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.3f\t%s\n", r.Name, r.ID, r.InputSize, r.OutputSize, r.Ratio, status)
	}
	return tw.Flush()
}
