// Package mapper implements MAPPER (spec.md ss4.6): given two loaded
// indices, a target T and a source S, find maximal common contiguous
// hash chains and emit them as matched regions. Two algorithms share the
// same output contract: Tichy block-move (STSC) and iterated
// longest-common-substring (ILCS).
package mapper

import (
	"fmt"
	"sort"

	"github.com/dlp/fpcc/internal/fpindex"
)

// DefaultMinRegionSize is the spec's -m default (spec.md ss6).
const DefaultMinRegionSize = 4

// Region is one matched contiguous chain of hashes, confined to a single
// file on each side (spec.md ss4.6, ss6).
type Region struct {
	TargetPath  string
	TargetStart int
	TargetLen   int
	SourcePath  string
	SourceStart int
	SourceLen   int
}

// Format renders a Region in the CLI's text format (spec.md ss6):
// "<target_path>:<tgt_start>,<tgt_len> -- <source_path>:<src_start>,<src_len>".
func (r Region) Format() string {
	return fmt.Sprintf("%s:%d,%d -- %s:%d,%d",
		r.TargetPath, r.TargetStart, r.TargetLen, r.SourcePath, r.SourceStart, r.SourceLen)
}

// bsearchHash finds the first (lowest sorted position) entry in idx with
// the given hash, per spec.md ss4.6: "bsearch on the sorted entries array
// compares by hash only; after finding any match the implementation MUST
// step left to the first entry sharing that hash". Returns ok=false if no
// entry has that hash.
func bsearchHash(idx *fpindex.Index, hash uint64) (pos int, ok bool) {
	entries := idx.Entries

	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].Hash >= hash
	})

	if i >= len(entries) || entries[i].Hash != hash || i == 0 {
		return 0, false
	}

	for i > 1 && entries[i-1].Hash == hash {
		i--
	}

	return i, true
}

// candidates returns every sorted-array position holding the given hash,
// starting from the first (leftmost) one, in ascending-position order --
// which, because Build used a stable sort, is also their original input
// order (spec.md ss4.5's duplicate-hash edge case, ss4.6's bsearch note).
func candidates(idx *fpindex.Index, hash uint64) []int {
	start, ok := bsearchHash(idx, hash)
	if !ok {
		return nil
	}

	var out []int

	for i := start; i < len(idx.Entries) && idx.Entries[i].Hash == hash; i++ {
		out = append(out, i)
	}

	return out
}
