// Package fpindex implements the inverted index at the heart of the
// toolchain (spec.md ss3, ss4.5, ss4.6): an array of hash entries
// simultaneously sorted by hash and singly-linked, via an embedded
// "next" field, into the original input order in which SIG_WRITER
// produced them.
package fpindex

import "errors"

// UnassignedFileCnt is the sentinel FileCnt value reserved for the dummy
// head entry at position 0 (spec.md ss3).
const UnassignedFileCnt = 0xFFFF

// entrySize is the on-disk size of one Entry: hash(8) + linepos(2) +
// filecnt(2) + next(4), little-endian, no padding (spec.md ss3, ss5).
const entrySize = 16

// Entry is one hash-entry record (spec.md ss3).
type Entry struct {
	Hash    uint64
	LinePos uint16
	FileCnt uint16
	Next    uint32
}

// ErrMalformedIndex is returned by the loader when a binary index fails
// its structural validation (spec.md ss7: IDX/COMP/MAP treat inputs as
// authoritative and fail fast on malformed input).
var ErrMalformedIndex = errors.New("fpindex: malformed index file")

// Index is an in-memory (or mmap-backed) view of a built fingerprint
// index: the dummy-headed entry array, sorted by Hash, chain-linked in
// input order, plus the path table each entry's FileCnt indexes into.
type Index struct {
	Entries []Entry
	Paths   []string
}

// Walk calls fn for every non-dummy entry in original input order,
// following the Next chain from Entries[0] (spec.md ss3's chain
// invariant).
func (idx *Index) Walk(fn func(pos uint32, e *Entry)) {
	for pos := idx.Entries[0].Next; pos != 0; pos = idx.Entries[pos].Next {
		fn(pos, &idx.Entries[pos])
	}
}

// Path returns the file path for an entry's FileCnt, or "" if the entry
// is the dummy head or FileCnt is out of range.
func (idx *Index) Path(e *Entry) string {
	if e.FileCnt == UnassignedFileCnt || int(e.FileCnt) >= len(idx.Paths) {
		return ""
	}

	return idx.Paths[e.FileCnt]
}
