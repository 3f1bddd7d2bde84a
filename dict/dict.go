// Package dict implements the bounded, append-only string dictionaries that
// keep the record format small.
//
// A dictionary maps arbitrary byte strings to small, stable integer indices.
// Indices are assigned in strict insertion order starting at zero and never
// change or disappear; the persisted form is the entry list itself, one entry
// per line, where line position is the index.
package dict

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/internal/hash"
)

// Dict is a single bounded dictionary: an ordered entry list plus an
// xxHash64-keyed index for O(1) lookups. Every hash hit is verified against
// the stored bytes, so a collision surfaces as errs.ErrHashCollision instead
// of a silently aliased index.
type Dict struct {
	entries  [][]byte
	index    map[uint64]uint32
	maxIndex uint32
}

// New creates an empty dictionary holding at most maxIndex entries.
func New(maxIndex uint32) *Dict {
	return &Dict{
		index:    make(map[uint64]uint32),
		maxIndex: maxIndex,
	}
}

// IndexOf returns the index assigned to val, assigning the next sequential
// index if val is new. Inserting an already-present string never grows the
// dictionary.
//
// It fails with errs.ErrDictOverflow when the dictionary is full and with
// errs.ErrDelimiterByte when val contains a newline, which the persisted
// line-per-entry form cannot represent.
func (d *Dict) IndexOf(val []byte) (uint32, error) {
	idx, ok, err := d.lookup(val)
	if err != nil || ok {
		return idx, err
	}

	if bytes.IndexByte(val, '\n') >= 0 {
		return 0, errs.ErrDelimiterByte
	}

	next := uint32(len(d.entries))
	if next >= d.maxIndex {
		return 0, errs.ErrDictOverflow
	}

	// []byte{} base keeps zero-length entries non-nil, so StringAt always
	// hands back a valid empty slice for an assigned index
	owned := append([]byte{}, val...)
	d.index[hash.ID(owned)] = next
	d.entries = append(d.entries, owned)

	return next, nil
}

// StringAt returns the byte string assigned to index.
// Only the decode path uses this; the encode path never reads back.
func (d *Dict) StringAt(index uint32) ([]byte, error) {
	if index >= uint32(len(d.entries)) {
		return nil, errs.ErrIndexRange
	}

	return d.entries[index], nil
}

// Len returns the number of assigned entries.
func (d *Dict) Len() int {
	return len(d.entries)
}

func (d *Dict) lookup(val []byte) (uint32, bool, error) {
	idx, ok := d.index[hash.ID(val)]
	if !ok {
		return 0, false, nil
	}
	if !bytes.Equal(d.entries[idx], val) {
		return 0, false, errs.ErrHashCollision
	}

	return idx, true, nil
}

// Load reconstructs a dictionary from its persisted form: one entry per
// newline-terminated line, line position = index.
func Load(r io.Reader, maxIndex uint32) (*Dict, error) {
	d := New(maxIndex)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if uint32(len(d.entries)) >= maxIndex {
			return nil, errs.ErrDictOverflow
		}

		entry := append([]byte{}, scanner.Bytes()...)
		d.index[hash.ID(entry)] = uint32(len(d.entries))
		d.entries = append(d.entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return d, nil
}

// LoadFile loads a dictionary from the file at path.
func LoadFile(path string, maxIndex uint32) (*Dict, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	defer file.Close()

	d, err := Load(file, maxIndex)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}

	return d, nil
}

// Save writes the entries in index order, one per newline-terminated line.
// Must run only after all index assignments for the run are complete, since
// later-assigned indices have to appear in the saved list.
func (d *Dict) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, entry := range d.entries {
		bw.Write(entry) //nolint:errcheck // sticky, reported by Flush
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// SaveFile writes the dictionary to the file at path, replacing it.
func (d *Dict) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}

	if err := d.Save(file); err != nil {
		file.Close()
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("save dictionary %s: %w", path, err)
	}

	return nil
}
