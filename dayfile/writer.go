// Package dayfile implements the append-only store for one calendar day of
// cache records, and a sequential reader over it.
//
// A day file is a strict concatenation of records in arrival order. One
// writer exclusively owns one day file for its whole lifetime; the file is
// created empty, appended to, closed, and never reopened for append.
package dayfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/record"
)

// Filename returns the canonical YYYY-MM-DD name of a day file.
func Filename(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// Writer appends encoded records for one day to a single output file.
// Buffered sequential writes only: no read-back, no seeking. A write failure
// is fatal for the day; a half-written record at the tail of a crashed file
// is an accepted risk.
type Writer struct {
	path  string
	file  *os.File
	w     *bufio.Writer
	enc   *record.Encoder
	dicts *dict.Dicts
}

// Create opens a fresh day file at path. The file must not already exist:
// the store is create-only, a failed run is rerun into a clean directory.
func Create(path string, dicts *dict.Dicts) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create day file: %w", err)
	}

	return &Writer{
		path:  path,
		file:  file,
		w:     bufio.NewWriter(file),
		enc:   record.NewEncoder(dicts),
		dicts: dicts,
	}, nil
}

// AddEntry appends one record with pre-resolved category and subkey indices.
func (w *Writer) AddEntry(catIndex, subIndex uint16, value []byte, timestamp float64, expiring bool) error {
	err := w.enc.Encode(record.Entry{
		CatIndex:  catIndex,
		SubIndex:  subIndex,
		Timestamp: timestamp,
		Value:     value,
		Expiring:  expiring,
	})
	if err != nil {
		return fmt.Errorf("day file %s: %w", w.path, err)
	}

	if _, err := w.enc.WriteTo(w.w); err != nil {
		return fmt.Errorf("day file %s: %w", w.path, err)
	}

	return nil
}

// AddEntryKey appends one record, resolving the subkey name through the key
// dictionary first. Both this and the pre-resolved AddEntry form are
// supported; resolution may happen either here or in the caller.
func (w *Writer) AddEntryKey(catIndex uint16, subkey, value []byte, timestamp float64, expiring bool) error {
	subIndex, err := w.dicts.KeyIndex(subkey)
	if err != nil {
		return fmt.Errorf("day file %s: %w", w.path, err)
	}

	return w.AddEntry(catIndex, subIndex, value, timestamp, expiring)
}

// Count returns the number of records appended so far.
func (w *Writer) Count() int {
	return w.enc.Count()
}

// Close flushes buffered records and closes the file.
func (w *Writer) Close() error {
	defer w.enc.Reset()

	if err := w.w.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("day file %s: %w", w.path, err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("day file %s: %w", w.path, err)
	}

	return nil
}
