package mapper

import "github.com/dlp/fpcc/internal/fpindex"

// chainSup holds, per entry position, the position of its input-order
// predecessor and whether that entry is the last one of its file (a
// "file boundary" a match cannot be extended across). Spec.md ss4.6.2.
type chainSup struct {
	prev []uint32
	term []bool
}

func buildSup(idx *fpindex.Index) *chainSup {
	sup := &chainSup{
		prev: make([]uint32, len(idx.Entries)),
		term: make([]bool, len(idx.Entries)),
	}
	sup.term[0] = true // start-of-stream boundary

	p := uint32(0)

	for {
		c := idx.Entries[p].Next
		if c == 0 {
			break
		}

		sup.prev[c] = p

		if idx.Entries[p].FileCnt != idx.Entries[c].FileCnt {
			sup.term[p] = true
		}

		p = c
	}

	return sup
}

// chainPositions walks the (possibly already spliced) input-order chain
// from the dummy head and returns every non-dummy position, in order.
func chainPositions(idx *fpindex.Index) []uint32 {
	var out []uint32

	for p := idx.Entries[0].Next; p != 0; p = idx.Entries[p].Next {
		out = append(out, p)
	}

	return out
}

// ILCS runs the iterated longest-common-substring algorithm (spec.md
// ss4.6.2): repeatedly find the single longest common contiguous chain
// across the two (shrinking) indices, emit it if it meets minRegion, cut
// it out of both chains, and repeat until nothing else qualifies.
//
// This mutates tgt.Entries and src.Entries in place (their Next fields,
// via splicing) -- the one exception spec.md ss3 carves out to
// COMPARATOR/MAPPER otherwise borrowing fingerprints read-only.
func ILCS(tgt, src *fpindex.Index, minRegion int) []Region {
	supT := buildSup(tgt)
	supS := buildSup(src)

	var regions []Region

	for {
		tChain := chainPositions(tgt)
		sChain := chainPositions(src)

		if len(tChain) == 0 || len(sChain) == 0 {
			break
		}

		length, iEnd, jEnd := longestCommon(tgt, src, supT, supS, tChain, sChain)
		if length < minRegion {
			break
		}

		iStart := iEnd - length + 1
		jStart := jEnd - length + 1

		tStart, tEnd := tChain[jStart], tChain[jEnd]
		sStart, sEnd := sChain[iStart], sChain[iEnd]

		tStartE := &tgt.Entries[tStart]
		tEndE := &tgt.Entries[tEnd]
		sStartE := &src.Entries[sStart]
		sEndE := &src.Entries[sEnd]

		regions = append(regions, Region{
			TargetPath:  tgt.Path(tStartE),
			TargetStart: int(tStartE.LinePos),
			TargetLen:   int(tEndE.LinePos) - int(tStartE.LinePos),
			SourcePath:  src.Path(sStartE),
			SourceStart: int(sStartE.LinePos),
			SourceLen:   int(sEndE.LinePos) - int(sStartE.LinePos),
		})

		splice(tgt, supT, tStart, tEnd)
		splice(src, supS, sStart, sEnd)
	}

	return regions
}

// longestCommon computes the classical two-row DP over the two
// input-order chains and returns the length of the longest match and its
// endpoints: iEnd is an index into sChain, jEnd an index into tChain.
func longestCommon(
	tgt, src *fpindex.Index, supT, supS *chainSup, tChain, sChain []uint32,
) (length, iEnd, jEnd int) {
	m := len(tChain)

	dpPrev := make([]int, m)
	dpCur := make([]int, m)

	best := 0
	bestI, bestJ := 0, 0

	for i, sPos := range sChain {
		sEntry := &src.Entries[sPos]
		prevSTerm := supS.term[supS.prev[sPos]]

		for j, tPos := range tChain {
			tEntry := &tgt.Entries[tPos]

			if sEntry.Hash != tEntry.Hash {
				dpCur[j] = 0

				continue
			}

			prevTTerm := supT.term[supT.prev[tPos]]

			switch {
			case prevSTerm || prevTTerm || j == 0:
				dpCur[j] = 1
			default:
				dpCur[j] = dpPrev[j-1] + 1
			}

			if dpCur[j] > best {
				best = dpCur[j]
				bestI, bestJ = i, j
			}
		}

		dpPrev, dpCur = dpCur, dpPrev
	}

	return best, bestI, bestJ
}

// splice removes the matched run [start, end] (inclusive, identified by
// entry-array positions) from idx's input-order chain and marks the new
// junction as a boundary so a later round cannot bridge across the gap.
func splice(idx *fpindex.Index, sup *chainSup, start, end uint32) {
	pred := sup.prev[start]
	after := idx.Entries[end].Next

	idx.Entries[pred].Next = after
	sup.term[pred] = true

	if after != 0 {
		sup.prev[after] = pred
	}
}
