package dayfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/record"
)

func TestFilename(t *testing.T) {
	require.Equal(t, "2024-03-05", Filename(2024, 3, 5))
	require.Equal(t, "0999-12-31", Filename(999, 12, 31))
}

func TestWriter_ReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename(2024, 3, 5))

	dicts := dict.NewDicts()
	cat, err := dicts.KeyIndex([]byte("sensor_t"))
	require.NoError(t, err)

	w, err := Create(path, dicts)
	require.NoError(t, err)

	// subkey resolved by the store
	require.NoError(t, w.AddEntryKey(cat, []byte("value"), []byte("12.5"), 1709600000.25, false))
	// subkey resolved by the caller
	sub, err := dicts.KeyIndex([]byte("status"))
	require.NoError(t, err)
	require.NoError(t, w.AddEntry(cat, sub, []byte("'idle"), 1709600001, false))
	// expiry marker with the sentinel value
	require.NoError(t, w.AddEntry(cat, sub, []byte("-"), 1709600002.5, true))

	require.Equal(t, 3, w.Count())
	require.NoError(t, w.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	subValue, err := dicts.KeyIndex([]byte("value"))
	require.NoError(t, err)

	want := []record.Entry{
		{CatIndex: cat, SubIndex: subValue, Timestamp: 1709600000.25, Value: []byte("12.5")},
		{CatIndex: cat, SubIndex: sub, Timestamp: 1709600001, Value: []byte("'idle")},
		{CatIndex: cat, SubIndex: sub, Timestamp: 1709600002.5, Value: []byte("-"), Expiring: true},
	}

	r := NewReader(file, dicts)
	for i, expected := range want {
		got, err := r.Next()
		require.NoError(t, err, "record %d", i)
		require.Equal(t, expected, got, "record %d", i)
	}

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestCreate_RefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename(2024, 3, 5))
	dicts := dict.NewDicts()

	w, err := Create(path, dicts)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Create(path, dicts)
	require.Error(t, err, "day files are create-only, never reopened for append")
}

func TestReader_TruncatedTail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename(2024, 3, 5))
	dicts := dict.NewDicts()

	w, err := Create(path, dicts)
	require.NoError(t, err)
	require.NoError(t, w.AddEntryKey(0, []byte("value"), []byte("foo"), 1, false))
	require.NoError(t, w.AddEntryKey(0, []byte("value"), []byte("bar"), 2, false))
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-2))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	r := NewReader(file, dicts)
	first, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("foo"), first.Value)

	_, err = r.Next()
	require.ErrorIs(t, err, errs.ErrShortRecord)
}

func TestReader_TruncatedHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial")
	require.NoError(t, os.WriteFile(path, make([]byte, 7), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	_, err = NewReader(file, dict.NewDicts()).Next()
	require.ErrorIs(t, err, errs.ErrShortRecord)
}
