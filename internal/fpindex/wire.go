package fpindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

// encode writes idx using the binary layout of spec.md ss3:
//
//	hash_cnt u32
//	entries  entrySize x hash_cnt (hash u64, linepos u16, filecnt u16, next u32)
//	path_cnt u32
//	paths    NUL-terminated UTF-8, path_cnt of them
//
// All integers are little-endian with no inter-field padding, written
// field-by-field so the layout is identical regardless of host
// endianness (spec.md ss5).
func encode(w io.Writer, idx *Index) error {
	if err := writeU32(w, uint32(len(idx.Entries))); err != nil { //nolint:gosec
		return fmt.Errorf("fpindex: write hash_cnt: %w", err)
	}

	for _, e := range idx.Entries {
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}

	if err := writeU32(w, uint32(len(idx.Paths))); err != nil { //nolint:gosec
		return fmt.Errorf("fpindex: write path_cnt: %w", err)
	}

	for _, p := range idx.Paths {
		if _, err := w.Write([]byte(p)); err != nil {
			return fmt.Errorf("fpindex: write path: %w", err)
		}

		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("fpindex: write path NUL: %w", err)
		}
	}

	return nil
}

func writeEntry(w io.Writer, e Entry) error {
	var buf [entrySize]byte

	binary.LittleEndian.PutUint64(buf[0:8], e.Hash)
	binary.LittleEndian.PutUint16(buf[8:10], e.LinePos)
	binary.LittleEndian.PutUint16(buf[10:12], e.FileCnt)
	binary.LittleEndian.PutUint32(buf[12:16], e.Next)

	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("fpindex: write entry: %w", err)
	}

	return nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte

	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])

	return err //nolint:wrapcheck
}

// decodeEntry reads one Entry from a fixed-size slice.
func decodeEntry(b []byte) Entry {
	return Entry{
		Hash:    binary.LittleEndian.Uint64(b[0:8]),
		LinePos: binary.LittleEndian.Uint16(b[8:10]),
		FileCnt: binary.LittleEndian.Uint16(b[10:12]),
		Next:    binary.LittleEndian.Uint32(b[12:16]),
	}
}
