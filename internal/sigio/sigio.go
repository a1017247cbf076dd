// Package sigio implements SIG_WRITER (spec.md ss4.4): combining a token
// source and the winnower into a per-file hash stream, in either of two
// wire formats -- sorted-only (for COMP) or with-lines (for IDX).
package sigio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/dlp/fpcc/internal/hashprim"
	"github.com/dlp/fpcc/internal/token"
	"github.com/dlp/fpcc/internal/winnow"
)

// DefaultNToken and DefaultWindow are the spec's CLI flag defaults
// (spec.md ss6: -n 5, -w 4).
const (
	DefaultNToken = 5
	DefaultWindow = 4
)

// Hashes runs a token source through the k-gram hash pipeline and the
// winnower, returning the selected (hash, line) pairs in emission order.
func Hashes(src token.Source, n, w int) []HashLine {
	stream := hashprim.NewStream(src, n)
	wn := winnow.New(w)

	var out []HashLine

	for {
		h, line, ok := stream.Next()
		if !ok {
			return out
		}

		if v, emitted := wn.Push(h); emitted {
			out = append(out, HashLine{Hash: v, Line: line})
		}
	}
}

// HashLine pairs a winnowed hash with the line of the k-gram's last
// token, per spec.md ss4.2.
type HashLine struct {
	Hash uint64
	Line int
}

// WriteSorted writes the sorted-only binary format consumed by COMP:
// {count u32, hashes u64 x count}, little-endian, hashes ascending.
func WriteSorted(w io.Writer, hashes []uint64) error {
	sorted := append([]uint64(nil), hashes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if err := binary.Write(w, binary.LittleEndian, uint32(len(sorted))); err != nil {
		return fmt.Errorf("sigio: write count: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, sorted); err != nil {
		return fmt.Errorf("sigio: write hashes: %w", err)
	}

	return nil
}

// ReadSorted reads the sorted-only binary format back into memory.
func ReadSorted(r io.Reader) ([]uint64, error) {
	var count uint32

	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("sigio: read count: %w", err)
	}

	hashes := make([]uint64, count)
	if count > 0 {
		if err := binary.Read(r, binary.LittleEndian, hashes); err != nil {
			return nil, fmt.Errorf("sigio: read hashes: %w", err)
		}
	}

	return hashes, nil
}

// WriteWithLines writes the SIG-to-IDX text stream for one file: a path
// line starting with '/', followed by one "%016lx %d\n" record per
// winnowed hash, per spec.md ss4.4.
func WriteWithLines(w io.Writer, path string, lines []HashLine) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, path); err != nil {
		return fmt.Errorf("sigio: write path: %w", err)
	}

	for _, hl := range lines {
		if _, err := fmt.Fprintf(bw, "%016x %d\n", hl.Hash, hl.Line); err != nil {
			return fmt.Errorf("sigio: write record: %w", err)
		}
	}

	return bw.Flush() //nolint:wrapcheck
}
