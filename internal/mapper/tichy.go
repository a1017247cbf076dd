package mapper

import "github.com/dlp/fpcc/internal/fpindex"

// STSC runs the Tichy block-move algorithm (spec.md ss4.6.1): for every
// position in the target's input-order chain, find the longest
// same-file contiguous run of equal hashes against any position in the
// source, retain the best, and emit a region when it meets minRegion.
func STSC(tgt, src *fpindex.Index, minRegion int) []Region {
	var regions []Region

	k := tgt.Entries[0].Next

	for k != 0 {
		bestLen := 0
		bestTStart, bestTEnd := k, k
		bestSStart, bestSEnd := uint32(0), uint32(0)

		for _, ci := range candidates(src, tgt.Entries[k].Hash) {
			sStart := uint32(ci) //nolint:gosec
			length, tEnd, sEnd := walkMatch(tgt, src, k, sStart)

			if length > bestLen {
				bestLen = length
				bestTStart, bestTEnd = k, tEnd
				bestSStart, bestSEnd = sStart, sEnd
			}
		}

		if bestLen >= minRegion {
			tStartE := &tgt.Entries[bestTStart]
			tEndE := &tgt.Entries[bestTEnd]
			sStartE := &src.Entries[bestSStart]
			sEndE := &src.Entries[bestSEnd]

			regions = append(regions, Region{
				TargetPath:  tgt.Path(tStartE),
				TargetStart: int(tStartE.LinePos),
				TargetLen:   int(tEndE.LinePos) - int(tStartE.LinePos),
				SourcePath:  src.Path(sStartE),
				SourceStart: int(sStartE.LinePos),
				SourceLen:   int(sEndE.LinePos) - int(sStartE.LinePos),
			})
		}

		// Advance past the matched region; if no match was found,
		// bestTEnd == k, so this advances by exactly one (spec.md ss9).
		k = tgt.Entries[bestTEnd].Next
	}

	return regions
}

// walkMatch simultaneously follows the target chain from tStart and the
// source chain from sStart as long as both sides stay within the same
// file and their hashes keep agreeing, returning the number of entries
// matched and the final position on each side.
func walkMatch(tgt, src *fpindex.Index, tStart, sStart uint32) (length int, tEnd, sEnd uint32) {
	length = 1
	tCur, sCur := tStart, sStart

	for {
		tNext := tgt.Entries[tCur].Next
		sNext := src.Entries[sCur].Next

		if tNext == 0 || sNext == 0 {
			break
		}

		if tgt.Entries[tNext].FileCnt != tgt.Entries[tCur].FileCnt {
			break
		}

		if src.Entries[sNext].FileCnt != src.Entries[sCur].FileCnt {
			break
		}

		if tgt.Entries[tNext].Hash != src.Entries[sNext].Hash {
			break
		}

		length++
		tCur, sCur = tNext, sNext
	}

	return length, tCur, sCur
}
