// Package fsx provides the filesystem seam cmd/sig opens input files
// through, adapted from the teacher's internal/fs: trimmed to the one
// operation SIG needs (open-for-read) so its warn-and-skip policy on
// unopenable files (spec.md ss7) is unit-testable without touching the
// real disk.
package fsx

import (
	"io"
	"os"
)

// Opener opens a file for reading. Satisfied by [Real] in production and
// by a test double that can be made to fail for chosen paths.
type Opener interface {
	Open(path string) (io.ReadCloser, error)
}

// Real implements [Opener] using the real filesystem: a pure passthrough
// to [os.Open].
type Real struct{}

// NewReal returns a new [Real] filesystem opener.
func NewReal() Real { return Real{} }

func (Real) Open(path string) (io.ReadCloser, error) {
	return os.Open(path) //nolint:gosec,wrapcheck
}

var _ Opener = Real{}
