package hashprim

import "github.com/dlp/fpcc/internal/token"

// Stream turns a token.Source into a lazy sequence of k-gram hashes
// (spec.md ss4.2). It keeps a ring of the last N tokens and emits one
// hash for every token read once at least N tokens have been seen.
// LinePos on each emission is the line of the most recent token in the
// k-gram, i.e. the lexer's current line at emit time.
type Stream struct {
	src token.Source
	n   int

	ring   []int32
	filled int
	pos    int
}

// NewStream builds a k-gram hash stream with window size n (n >= 1).
func NewStream(src token.Source, n int) *Stream {
	return &Stream{src: src, n: n, ring: make([]int32, n)}
}

// Next returns the next k-gram hash and its line, or ok=false once the
// token source is exhausted. Hashes whose digest collides with the
// reserved zero sentinel are silently skipped (spec.md ss4.1, ss7) and
// the stream advances past them transparently.
func (s *Stream) Next() (hash uint64, line int, ok bool) {
	for {
		code, ln, srcOK := s.src.Next()
		if !srcOK {
			return 0, 0, false
		}

		s.ring[s.pos%s.n] = code
		s.pos++

		if s.filled < s.n {
			s.filled++
		}

		if s.filled < s.n {
			continue
		}

		gram := make([]int32, s.n)
		for i := 0; i < s.n; i++ {
			gram[i] = s.ring[(s.pos-s.n+i)%s.n]
		}

		h, hashOK := KGram(gram)
		if !hashOK {
			continue
		}

		return h, ln, true
	}
}
