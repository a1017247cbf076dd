package fpindex

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// headerSize is the size of the hash_cnt field; a shorter file is
// rejected before it is mapped. A hash_cnt of zero is rejected by
// decodeIndex (the dummy head is always written, per spec.md ss4.5's
// edge case).
const headerSize = 4

// Load reads a binary index file (spec.md ss3) via a read-only mmap,
// mirroring the teacher's mmap-then-validate load path: every offset
// derived from the header is checked against the file size before any
// byte at that offset is trusted, so a truncated or corrupt file returns
// ErrMalformedIndex instead of panicking or reading out of bounds.
//
// The mapping is unmapped before Load returns; entries and paths are
// decoded into ordinary Go slices first. This trades a small amount of
// extra copying for safe, GC-owned memory -- the loaded Index has no
// dependency on the file staying open or mapped, and COMPARATOR/MAPPER
// can treat it as plain read-only data (spec.md ss3's ownership note)
// without an explicit teardown call.
func Load(path string) (*Index, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("fpindex: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fpindex: stat %s: %w", path, err)
	}

	size := info.Size()
	if size < headerSize {
		return nil, fmt.Errorf("%w: %s is too small", ErrMalformedIndex, path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("fpindex: mmap %s: %w", path, err)
	}
	defer func() { _ = unix.Munmap(data) }()

	return decodeIndex(path, data)
}

func decodeIndex(path string, data []byte) (*Index, error) {
	offset := 0

	hashCnt, err := readU32At(data, offset, path)
	if err != nil {
		return nil, err
	}

	offset += 4

	if hashCnt == 0 {
		return nil, fmt.Errorf("%w: %s: no dummy head entry", ErrMalformedIndex, path)
	}

	entriesEnd := offset + int(hashCnt)*entrySize
	if entriesEnd < offset || entriesEnd > len(data) {
		return nil, fmt.Errorf("%w: %s: entries overrun file size", ErrMalformedIndex, path)
	}

	entries := make([]Entry, hashCnt)
	for i := 0; i < int(hashCnt); i++ {
		entries[i] = decodeEntry(data[offset+i*entrySize : offset+(i+1)*entrySize])
	}

	offset = entriesEnd

	pathCnt, err := readU32At(data, offset, path)
	if err != nil {
		return nil, err
	}

	offset += 4

	paths := make([]string, 0, pathCnt)

	for i := uint32(0); i < pathCnt; i++ {
		nul := offset

		for nul < len(data) && data[nul] != 0 {
			nul++
		}

		if nul >= len(data) {
			return nil, fmt.Errorf("%w: %s: unterminated path", ErrMalformedIndex, path)
		}

		paths = append(paths, string(data[offset:nul]))
		offset = nul + 1
	}

	if uint32(len(paths)) != pathCnt {
		return nil, fmt.Errorf("%w: %s: path_cnt mismatch", ErrMalformedIndex, path)
	}

	idx := &Index{Entries: entries, Paths: paths}

	if err := validateChain(idx); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedIndex, path, err)
	}

	return idx, nil
}

func readU32At(data []byte, offset int, path string) (uint32, error) {
	if offset+4 > len(data) {
		return 0, fmt.Errorf("%w: %s: truncated header", ErrMalformedIndex, path)
	}

	return uint32(data[offset]) | uint32(data[offset+1])<<8 |
		uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24, nil
}

// validateChain confirms every Next reference is in bounds and that
// following the chain from the dummy head visits every non-dummy entry
// exactly once (spec.md ss3's chain invariant; ss8 invariant 2).
func validateChain(idx *Index) error {
	n := len(idx.Entries)
	visited := make([]bool, n)

	pos := uint32(0)
	count := 0

	for {
		next := idx.Entries[pos].Next
		if next == 0 {
			break
		}

		if int(next) >= n {
			return fmt.Errorf("next index %d out of range", next)
		}

		if visited[next] {
			return fmt.Errorf("cycle detected at entry %d", next)
		}

		visited[next] = true
		count++
		pos = next

		if count > n {
			return fmt.Errorf("chain longer than entry count")
		}
	}

	if count != n-1 {
		return fmt.Errorf("chain visits %d entries, want %d", count, n-1)
	}

	return nil
}
