package mapper_test

import (
	"strings"
	"testing"

	"github.com/dlp/fpcc/internal/fpindex"
	"github.com/dlp/fpcc/internal/mapper"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFromText(t *testing.T, text string) *fpindex.Index {
	t.Helper()

	b := fpindex.NewBuilder(nil)
	require.NoError(t, b.ReadStream(strings.NewReader(text)))

	return b.Build()
}

// hashLine renders a k-gram hash as the 16-hex-digit fixed-width record
// the builder's text stream expects (spec.md ss4.5).
func hashLine(h uint64, linepos int) string {
	const hexDigits = "0123456789abcdef"

	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[h&0xF]
		h >>= 4
	}

	return string(buf) + " " + itoa(linepos) + "\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	return string(digits)
}

// S6 (spec.md ss8): a contiguous run of 4 matching hashes, embedded in a
// longer source chain, is found as a single length-4 region.
func TestSTSC_ContiguousChain(t *testing.T) {
	t.Parallel()

	tgtText := "/t.c\n" +
		hashLine(10, 1) + hashLine(11, 2) + hashLine(12, 3) + hashLine(13, 4)
	srcText := "/s.c\n" +
		hashLine(99, 1) + hashLine(10, 2) + hashLine(11, 3) + hashLine(12, 4) + hashLine(13, 5) + hashLine(77, 6)

	tgt := buildFromText(t, tgtText)
	src := buildFromText(t, srcText)

	regions := mapper.STSC(tgt, src, 3)

	require.Len(t, regions, 1)
	assert.Equal(t, "/t.c", regions[0].TargetPath)
	assert.Equal(t, "/s.c", regions[0].SourcePath)
	assert.Equal(t, 1, regions[0].TargetStart)
	assert.Equal(t, 2, regions[0].SourceStart)
	assert.Equal(t, 3, regions[0].TargetLen) // linepos(13)-linepos(10) = 4-1
	assert.Equal(t, 3, regions[0].SourceLen) // linepos(13)-linepos(10) in src = 5-2
}

// S7 (spec.md ss8): a match that would bridge two target files is cut at
// the file boundary, yielding two regions rather than one.
func TestSTSC_StopsAtFileBoundary(t *testing.T) {
	t.Parallel()

	tgtText := "/t1.c\n" +
		hashLine(1, 1) + hashLine(2, 2) + hashLine(3, 3) +
		"/t2.c\n" +
		hashLine(4, 1) + hashLine(5, 2)
	srcText := "/s.c\n" +
		hashLine(1, 1) + hashLine(2, 2) + hashLine(3, 3) + hashLine(4, 4) + hashLine(5, 5)

	tgt := buildFromText(t, tgtText)
	src := buildFromText(t, srcText)

	regions := mapper.STSC(tgt, src, 2)

	require.Len(t, regions, 2)
	assert.Equal(t, "/t1.c", regions[0].TargetPath)
	assert.Equal(t, "/t2.c", regions[1].TargetPath)
}

func TestSTSC_NoMatchBelowMinRegion(t *testing.T) {
	t.Parallel()

	tgt := buildFromText(t, "/t.c\n"+hashLine(1, 1)+hashLine(2, 2))
	src := buildFromText(t, "/s.c\n"+hashLine(1, 1)+hashLine(2, 2))

	regions := mapper.STSC(tgt, src, 5)

	assert.Empty(t, regions)
}

func TestILCS_ContiguousChain(t *testing.T) {
	t.Parallel()

	tgtText := "/t.c\n" +
		hashLine(10, 1) + hashLine(11, 2) + hashLine(12, 3) + hashLine(13, 4)
	srcText := "/s.c\n" +
		hashLine(99, 1) + hashLine(10, 2) + hashLine(11, 3) + hashLine(12, 4) + hashLine(13, 5) + hashLine(77, 6)

	tgt := buildFromText(t, tgtText)
	src := buildFromText(t, srcText)

	regions := mapper.ILCS(tgt, src, 3)

	require.Len(t, regions, 1)
	assert.Equal(t, 1, regions[0].TargetStart)
	assert.Equal(t, 2, regions[0].SourceStart)
}

// ILCS should find the single longest run even when a shorter one exists
// elsewhere in the same chain pair, and should stop once nothing left
// meets minRegion.
func TestILCS_PicksLongestThenStops(t *testing.T) {
	t.Parallel()

	tgtText := "/t.c\n" +
		hashLine(1, 1) + hashLine(2, 2) + // short run (len 2)
		hashLine(50, 3) +
		hashLine(10, 4) + hashLine(11, 5) + hashLine(12, 6) + hashLine(13, 7) // long run (len 4)
	srcText := "/s.c\n" +
		hashLine(10, 1) + hashLine(11, 2) + hashLine(12, 3) + hashLine(13, 4) +
		hashLine(60, 5) +
		hashLine(1, 6) + hashLine(2, 7)

	tgt := buildFromText(t, tgtText)
	src := buildFromText(t, srcText)

	regions := mapper.ILCS(tgt, src, 2)

	// The longer run is found (and spliced out) first.
	want := []mapper.Region{
		{TargetPath: "/t.c", TargetStart: 4, TargetLen: 3, SourcePath: "/s.c", SourceStart: 1, SourceLen: 3},
		{TargetPath: "/t.c", TargetStart: 1, TargetLen: 1, SourcePath: "/s.c", SourceStart: 6, SourceLen: 1},
	}

	if diff := cmp.Diff(want, regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestRegion_Format(t *testing.T) {
	t.Parallel()

	r := mapper.Region{
		TargetPath: "/a.c", TargetStart: 1, TargetLen: 4,
		SourcePath: "/b.c", SourceStart: 2, SourceLen: 4,
	}

	assert.Equal(t, "/a.c:1,4 -- /b.c:2,4", r.Format())
}
