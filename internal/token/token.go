// Package token defines the contract between an external lexer and the
// rest of the fingerprinting pipeline. The lexer itself is out of scope
// for this module (see spec.md ss1): it is treated as an opaque source of
// positive integer token codes and 1-based line numbers.
package token

// Source is a pull-based token iterator. Next returns ok=false once the
// underlying lexer is exhausted; callers must not call Next again after
// that. A code of 0 from a concrete lexer is a lexer-specific end-of-stream
// artifact and must never be surfaced here as ok=true, code=0 -- adapters
// translate it to ok=false.
type Source interface {
	Next() (code int32, line int, ok bool)
}

// SliceSource replays a fixed sequence of (code, line) pairs. Used in
// tests and by callers that already have a tokenized file in memory.
type SliceSource struct {
	Codes []int32
	Lines []int

	pos int
}

// NewSliceSource builds a Source over parallel code/line slices.
func NewSliceSource(codes []int32, lines []int) *SliceSource {
	return &SliceSource{Codes: codes, Lines: lines}
}

func (s *SliceSource) Next() (int32, int, bool) {
	if s.pos >= len(s.Codes) {
		return 0, 0, false
	}

	code, line := s.Codes[s.pos], s.Lines[s.pos]
	s.pos++

	return code, line, true
}
