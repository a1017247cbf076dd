// Package compare implements the COMPARATOR (spec.md ss4.7): pairwise
// resemblance and containment between two sorted hash multisets, with
// optional subtraction of hashes shared with a base fingerprint.
package compare

// Result holds the three percentages COMP can emit (spec.md ss6).
type Result struct {
	Resemblance   int // r(A,B)
	ContainmentAB int // c(A,B): fraction of A found in B
	ContainmentBA int // c(B,A): fraction of B found in A
}

// Compare runs the three-finger merge of spec.md ss4.7 over sorted
// ascending multisets a, b and an optional sorted ascending base. base
// may be nil or empty (no subtraction).
func Compare(a, b, base []uint64) Result {
	nboth := countBoth(a, b)
	nexcl := countExcluded(a, b, base)

	return Result{
		Resemblance:   resemblance(len(a), len(b), nboth, nexcl),
		ContainmentAB: containment(len(a), nboth, nexcl),
		ContainmentBA: containment(len(b), nboth, nexcl),
	}
}

// countBoth returns |{h : h in A and h in B}| as a multiset count,
// advancing both fingers on a match (spec.md ss4.7).
func countBoth(a, b []uint64) int {
	i, j, n := 0, 0, 0

	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}

	return n
}

// countExcluded returns |A ^ B ^ base|, each base element consumed at
// most once, via a three-finger merge over all three sorted arrays.
func countExcluded(a, b, base []uint64) int {
	if len(base) == 0 {
		return 0
	}

	i, j, k, n := 0, 0, 0, 0

	for i < len(a) && j < len(b) && k < len(base) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		case base[k] < a[i]:
			k++
		case base[k] > a[i]:
			// a[i] == b[j] but base doesn't have it (yet): this
			// intersection element is not excluded.
			i++
			j++
		default:
			// a[i] == b[j] == base[k]
			n++
			i++
			j++
			k++
		}
	}

	return n
}

// resemblance computes 100*2*(nboth-nexcl)/(|A|+|B|-2*nexcl), truncating,
// with the limit cases of spec.md ss4.7: 100 if the denominator is zero
// and the numerator would also be zero (everything excluded), 0 if both
// inputs are empty.
func resemblance(lenA, lenB, nboth, nexcl int) int {
	denom := lenA + lenB - 2*nexcl
	numer := 2 * (nboth - nexcl)

	if denom == 0 {
		if lenA == 0 && lenB == 0 {
			return 0
		}

		return 100
	}

	return 100 * numer / denom
}

// containment computes 100*(nboth-nexcl)/(lenX-nexcl), truncating, or 0
// when the denominator is zero (undefined, per spec.md ss4.7).
func containment(lenX, nboth, nexcl int) int {
	denom := lenX - nexcl
	if denom == 0 {
		return 0
	}

	return 100 * (nboth - nexcl) / denom
}
