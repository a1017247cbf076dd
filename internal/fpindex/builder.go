package fpindex

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// Builder accumulates hash entries and paths read from the SIG-to-IDX
// text stream (spec.md ss4.4, ss4.5) until Build is called.
type Builder struct {
	entries []Entry // entries[0] is always the dummy head, in input order
	paths   []string
	fileCnt int // -1 until the first path line is seen
	warn    func(string)
}

// NewBuilder creates an empty Builder. warn, if non-nil, is called with a
// diagnostic message for each malformed input line (spec.md ss4.5); IDX
// continues processing rather than aborting.
func NewBuilder(warn func(string)) *Builder {
	if warn == nil {
		warn = func(string) {}
	}

	return &Builder{
		entries: []Entry{{Hash: 0, LinePos: 0, FileCnt: UnassignedFileCnt, Next: 0}},
		fileCnt: -1,
		warn:    warn,
	}
}

// ReadStream parses the SIG-to-IDX text stream per spec.md ss4.5:
//   - a line starting with '/' is a path: strip trailing CR/LF, append to
//     the path table, bump the current file counter.
//   - a line matching "%016lx %d" is a hash record for the current file.
//   - a blank line is skipped without a warning.
//   - anything else is a warning, and the line is ignored.
func (b *Builder) ReadStream(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")

		if line == "" {
			continue
		}

		if line[0] == '/' {
			b.fileCnt++
			b.paths = append(b.paths, line)

			continue
		}

		hash, linepos, ok := parseHashLine(line)
		if !ok {
			b.warn(fmt.Sprintf("fpindex: ignoring malformed line: %q", line))

			continue
		}

		b.entries = append(b.entries, Entry{
			Hash:    hash,
			LinePos: linepos,
			FileCnt: uint16(b.fileCnt), //nolint:gosec
			Next:    0,
		})
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("fpindex: reading stream: %w", err)
	}

	return nil
}

func parseHashLine(line string) (hash uint64, linepos uint16, ok bool) {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 || sp != 16 {
		return 0, 0, false
	}

	h, err := strconv.ParseUint(line[:sp], 16, 64)
	if err != nil {
		return 0, 0, false
	}

	lp, err := strconv.ParseUint(line[sp+1:], 10, 16)
	if err != nil {
		return 0, 0, false
	}

	return h, uint16(lp), true
}

// Build threads the input-order chain through the now-complete entry set
// and returns the resulting Index. This is spec.md ss4.5's construction
// algorithm, in its "cleaner equivalent formulation": physically sort a
// copy of the entries by hash, then for each pair of adjacent sorted
// positions, record on the earlier one a Next pointing at the sorted
// position whose original input rank is one greater -- i.e. thread the
// chain by input order, not by sorted adjacency.
func (b *Builder) Build() *Index {
	n := len(b.entries) - 1 // non-dummy entry count

	// perm[pos] is the *original* input-order index (into b.entries) of
	// the entry that ends up at sorted position pos. perm[0] is always 0
	// (the dummy stays fixed per spec.md ss4.5 step 3). Since b.entries
	// is already in input order, an original index IS its input rank --
	// no separate rank array is needed.
	perm := make([]int, len(b.entries))
	for i := range perm {
		perm[i] = i
	}

	rest := perm[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return b.entries[rest[i]].Hash < b.entries[rest[j]].Hash
	})

	// sortedPosOf[origIdx] = the sorted position now holding the entry
	// that was originally at input-order index origIdx. This is the
	// inverse of perm.
	sortedPosOf := make([]int, len(b.entries))
	for pos, orig := range perm {
		sortedPosOf[orig] = pos
	}

	sorted := make([]Entry, len(b.entries))
	for pos, orig := range perm {
		sorted[pos] = b.entries[orig]
	}

	// Thread the chain: the entry originally at input rank r gets a Next
	// pointing at the sorted position of the entry originally at input
	// rank r+1. Starting from the dummy (input rank 0), following Next
	// therefore reproduces the original input order exactly.
	for origIdx := 0; origIdx < n; origIdx++ {
		cur := sortedPosOf[origIdx]
		next := sortedPosOf[origIdx+1]
		sorted[cur].Next = uint32(next) //nolint:gosec
	}

	return &Index{Entries: sorted, Paths: b.paths}
}

// Write serializes idx to path in the binary format of spec.md ss3,
// using an atomic rename so a failure partway through never leaves a
// torn file on disk.
func Write(path string, idx *Index) error {
	var buf bytes.Buffer

	if err := encode(&buf, idx); err != nil {
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("fpindex: writing %s: %w", path, err)
	}

	return nil
}
