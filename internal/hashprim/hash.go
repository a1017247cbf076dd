// Package hashprim implements the HASH_PRIMITIVE: a 64-bit hash of an
// ordered k-gram of token codes, per spec.md ss4.1.
package hashprim

import (
	"crypto/md5" //nolint:gosec // MD5 here is a distribution primitive, not a security boundary (spec.md ss4.1).
	"encoding/binary"
)

// KGram hashes an ordered sequence of token codes (oldest to newest) to a
// 64-bit value: the first 8 bytes of MD5 over the codes encoded as
// fixed-width little-endian uint32, concatenated in order.
//
// Returns ok=false if the digest's low 64 bits happen to be zero, which
// the pipeline reserves as the "no-hash" sentinel (spec.md ss3); callers
// must drop the k-gram in that case rather than treat 0 as data.
func KGram(codes []int32) (hash uint64, ok bool) {
	buf := make([]byte, 4*len(codes))

	for i, c := range codes {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(c))
	}

	digest := md5.Sum(buf) //nolint:gosec

	h := binary.LittleEndian.Uint64(digest[:8])
	if h == 0 {
		return 0, false
	}

	return h, true
}
