package huffman

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cocosip/go-jpeg-huffman/jpeg/common"
)

// entry is one slot of the decode table; length 0 marks an unfilled slot
type entry struct {
	symbol byte
	length uint8
}

// Decoder decodes symbols through a flat table indexed by the next
// MaxBits bits of the stream
type Decoder struct {
	maxBits  int
	minBits  int
	entries  []entry
	complete bool
}

// NewDecoder builds the decode table from per-length counts and the
// symbols in header order
func NewDecoder(counts [MaxCodeLength]uint8, symbols []byte, params *Parameters) (*Decoder, error) {
	total := 0
	d := &Decoder{}
	for i, n := range counts {
		total += int(n)
		if n != 0 {
			d.maxBits = i + 1
			if d.minBits == 0 {
				d.minBits = i + 1
			}
		}
	}

	if total == 0 || total > 256 {
		return nil, fmt.Errorf("%w: %d codes", ErrSymbolCount, total)
	}
	if len(symbols) != total {
		return nil, fmt.Errorf("%w: counts sum to %d, have %d symbols", ErrSymbolCount, total, len(symbols))
	}

	numEntries := 1 << uint(d.maxBits)
	d.entries = make([]entry, numEntries)

	index := 0
	sym := 0
	times := numEntries
	for l := 1; l <= MaxCodeLength; l++ {
		times >>= 1

		for j := 0; j < int(counts[l-1]); j++ {
			if index+times > numEntries {
				return nil, fmt.Errorf("%w: length %d code overruns the table", ErrOverlappingCodes, l)
			}

			e := entry{symbol: symbols[sym], length: uint8(l)}
			sym++
			for t := 0; t < times; t++ {
				d.entries[index] = e
				index++
			}
		}
	}

	d.complete = index == numEntries

	// A lone one-bit code is how a single-symbol alphabet is written
	if !d.complete && total > 1 {
		if params.strict() {
			return nil, fmt.Errorf("%w: %d of %d filled", ErrIncompleteTable, index, numEntries)
		}
		params.logger().Warn("huffman: incomplete decode table",
			"filled", index,
			"entries", numEntries)
	}

	return d, nil
}

// MaxBits returns the longest code length, which is also the table index width
func (d *Decoder) MaxBits() int {
	return d.maxBits
}

// MinBits returns the shortest code length
func (d *Decoder) MinBits() int {
	return d.minBits
}

// Entries returns the table size, 1 << MaxBits
func (d *Decoder) Entries() int {
	return len(d.entries)
}

// Complete reports whether every table slot belongs to a code
func (d *Decoder) Complete() bool {
	return d.complete
}

// Decode decodes numSym symbols into out.
// Decoding must start at a byte boundary of the entropy-coded data.
func (d *Decoder) Decode(br *common.BitReader, numSym int, out []byte) error {
	if len(out) < numSym {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, numSym, len(out))
	}
	return d.decode(br, numSym, func(i int, symbol byte) error {
		out[i] = symbol
		return nil
	})
}

// DecodeTo decodes numSym symbols and writes them to w.
// It returns the number of symbols that reached w. Symbols still
// buffered when decoding fails are dropped.
func (d *Decoder) DecodeTo(w io.Writer, br *common.BitReader, numSym int) (int64, error) {
	bw := bufio.NewWriter(w)
	var decoded int64
	err := d.decode(br, numSym, func(i int, symbol byte) error {
		if err := bw.WriteByte(symbol); err != nil {
			return fmt.Errorf("%w: writing output symbols: %w", ErrIO, err)
		}
		decoded++
		return nil
	})
	if err != nil {
		return decoded - int64(bw.Buffered()), err
	}
	if err := bw.Flush(); err != nil {
		return decoded - int64(bw.Buffered()), fmt.Errorf("%w: writing output symbols: %w", ErrIO, err)
	}
	return decoded, nil
}

// decode runs the table lookup loop. The window holds the next MaxBits
// bits; after each symbol only its length in new bits is shifted in.
func (d *Decoder) decode(br *common.BitReader, numSym int, emit func(int, byte) error) error {
	if numSym <= 0 {
		return nil
	}

	mask := uint32(1)<<uint(d.maxBits) - 1

	code, missing, err := refill(br, 0, d.maxBits, 0)
	if err != nil {
		return err
	}

	for i := 0; i < numSym; i++ {
		code &= mask
		e := d.entries[code]

		// Bits past the end of the data are zero filled; a code that
		// needs any of them was cut off
		if e.length == 0 || int(e.length) > d.maxBits-missing {
			if missing > 0 {
				return fmt.Errorf("%w: at symbol %d of %d", ErrTruncated, i, numSym)
			}
			return fmt.Errorf("%w: at symbol %d of %d", ErrInvalidCode, i, numSym)
		}

		if err := emit(i, e.symbol); err != nil {
			return err
		}

		if i == numSym-1 {
			break
		}

		code, missing, err = refill(br, code, int(e.length), missing)
		if err != nil {
			return err
		}
	}

	return nil
}

// refill shifts n new bits into code. Once the data has ended the
// shifted-in bits are zero and counted in missing.
func refill(br *common.BitReader, code uint32, n int, missing int) (uint32, int, error) {
	if missing > 0 {
		return code << uint(n), missing + n, nil
	}

	bits, read, err := br.ReadBits(n)
	if err != nil {
		if !common.IsStreamEnd(err) {
			return 0, 0, fmt.Errorf("%w: %w: %w", ErrReadInput, ErrIO, err)
		}
		short := n - read
		return code<<uint(n) | uint32(bits)<<uint(short), short, nil
	}

	return code<<uint(n) | uint32(bits), 0, nil
}
