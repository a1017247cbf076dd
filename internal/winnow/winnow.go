// Package winnow implements robust winnowing (spec.md ss4.3): given a
// lazy sequence of hashes, select a stable, sparse subsequence such that
// every window of w consecutive hashes contributes at least one selected
// hash, and identical substrings of the input produce identical
// selections.
package winnow

import "math"

const sentinel = math.MaxUint64

// Winnower holds the sliding-window state for one hash stream. It is an
// explicit per-stream object, not process-wide state (spec.md ss9).
type Winnower struct {
	w     int
	ring  []uint64
	r     int // right end, index into ring
	m     int // position of current minimum
	count int // total hashes pushed so far
}

// New builds a Winnower with window size w (w >= 1).
func New(w int) *Winnower {
	wn := &Winnower{w: w, ring: make([]uint64, w)}
	for i := range wn.ring {
		wn.ring[i] = sentinel
	}

	return wn
}

// Push feeds the next hash into the window. It returns (value, true) if
// this push causes an emission, per the robust winnowing rule: the same
// hash value may be emitted more than once if it becomes the rightmost
// minimum of disjoint windows. No emission is possible until at least w
// hashes have been pushed, since before that the window still holds
// sentinel values left over from initialization.
func (wn *Winnower) Push(h uint64) (emitted uint64, ok bool) {
	wn.r = (wn.r + 1) % wn.w
	wn.ring[wn.r] = h
	wn.count++

	if wn.m == wn.r {
		// The previous minimum has just been overwritten: rescan
		// leftward from r-1 back to (but excluding) r, tracking the
		// rightmost (most recently written) minimal value. m starts
		// at r itself -- the position just written is the initial
		// candidate -- and only strictly smaller values displace it,
		// so a tie keeps the more recent position.
		i := (wn.r - 1 + wn.w) % wn.w
		for i != wn.r {
			if wn.ring[i] < wn.ring[wn.m] {
				wn.m = i
			}

			i = (i - 1 + wn.w) % wn.w
		}
	} else if wn.ring[wn.r] <= wn.ring[wn.m] {
		// Robust winnowing: <=, not <, so a new value tying the
		// current minimum becomes the new (more recent) minimum.
		wn.m = wn.r
	} else {
		return 0, false
	}

	if wn.count < wn.w {
		return 0, false
	}

	return wn.ring[wn.m], true
}

// Select runs the winnower over a finite sequence of hashes and returns
// the emitted subsequence, in emission order.
func Select(w int, hashes []uint64) []uint64 {
	wn := New(w)

	out := make([]uint64, 0, len(hashes)/2+1)

	for _, h := range hashes {
		if v, ok := wn.Push(h); ok {
			out = append(out, v)
		}
	}

	return out
}
