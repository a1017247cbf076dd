package hashprim_test

import (
	"testing"

	"github.com/dlp/fpcc/internal/hashprim"
	"github.com/dlp/fpcc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKGram_SameCodesSameHash(t *testing.T) {
	t.Parallel()

	h1, ok1 := hashprim.KGram([]int32{1, 2, 3})
	h2, ok2 := hashprim.KGram([]int32{1, 2, 3})

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, h1, h2)
}

func TestKGram_OrderMatters(t *testing.T) {
	t.Parallel()

	h1, _ := hashprim.KGram([]int32{1, 2, 3})
	h2, _ := hashprim.KGram([]int32{3, 2, 1})

	assert.NotEqual(t, h1, h2)
}

// TestStream_NoEmissionBelowWindow verifies the stream emits nothing
// until n tokens have been seen (spec.md ss4.2).
func TestStream_NoEmissionBelowWindow(t *testing.T) {
	t.Parallel()

	src := token.NewSliceSource([]int32{1, 2}, []int{1, 2})
	s := hashprim.NewStream(src, 3)

	_, _, ok := s.Next()
	assert.False(t, ok)
}

func TestStream_EmitsOncePerTokenOnceFilled(t *testing.T) {
	t.Parallel()

	src := token.NewSliceSource([]int32{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5})
	s := hashprim.NewStream(src, 3)

	var lines []int

	for {
		_, line, ok := s.Next()
		if !ok {
			break
		}

		lines = append(lines, line)
	}

	// tokens at lines 3,4,5 are each the end of a full 3-gram.
	assert.Equal(t, []int{3, 4, 5}, lines)
}

func TestStream_DifferentWindowsDifferentHashes(t *testing.T) {
	t.Parallel()

	src1 := token.NewSliceSource([]int32{1, 2, 3}, []int{1, 2, 3})
	s1 := hashprim.NewStream(src1, 3)
	h1, _, ok1 := s1.Next()
	require.True(t, ok1)

	src2 := token.NewSliceSource([]int32{9, 9, 9}, []int{1, 2, 3})
	s2 := hashprim.NewStream(src2, 3)
	h2, _, ok2 := s2.Next()
	require.True(t, ok2)

	assert.NotEqual(t, h1, h2)
}
