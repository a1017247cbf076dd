package winnow_test

import (
	"testing"

	"github.com/dlp/fpcc/internal/winnow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 from spec.md ss8: the classic winnowing worked example.
func TestSelect_S1_ClassicExample(t *testing.T) {
	t.Parallel()

	hashes := []uint64{77, 74, 42, 17, 98, 50, 17, 98, 8, 88, 67, 39, 77, 74, 42, 17, 98}

	got := winnow.Select(4, hashes)

	assert.Equal(t, []uint64{17, 17, 8, 39, 17}, got)
}

// Invariant 1 (spec.md ss8): every window of w consecutive hashes
// contributes at least one selected hash.
func TestSelect_LocalityGuarantee(t *testing.T) {
	t.Parallel()

	hashes := make([]uint64, 200)
	for i := range hashes {
		hashes[i] = uint64((i*2654435761 + 7) % 97)
	}

	const w = 4

	wn := winnow.New(w)

	positions := make([]int, 0, len(hashes))
	emittedAt := make(map[int]bool)

	for i, h := range hashes {
		if _, ok := wn.Push(h); ok {
			positions = append(positions, i)
			emittedAt[i] = true
		}
	}

	require.NotEmpty(t, positions)

	// The very first window is a boundary case: no emission is possible
	// until w hashes have been pushed (the ring still holds init
	// sentinels before that), so window 0 can legitimately come up
	// empty. Every window from position 1 onward must hold.
	for start := 1; start+w <= len(hashes); start++ {
		found := false

		for i := start; i < start+w; i++ {
			if emittedAt[i] {
				found = true

				break
			}
		}

		assert.Truef(t, found, "window starting at %d has no selected hash", start)
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, winnow.Select(4, nil))
}

func TestSelect_FewerThanWindow(t *testing.T) {
	t.Parallel()

	assert.Empty(t, winnow.Select(4, []uint64{1, 2, 3}))
}
