package convert

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/compactcache/dayfile"
	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/record"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeStoreFile(t *testing.T, dir, category, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, category), []byte(content), 0o644))
}

func TestConverter_EndToEnd(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	writeStoreFile(t, filepath.Join(inDir, "2021", "03-05"), "sensor_t",
		"value\t1614902400.5\t+\t12.5\n"+
			"status\t1614902401\t+\t'ok: running\n"+
			"malformed line without tabs\n"+
			"three\tfields\tonly\n"+
			"value\t1614902402\t-\t-\n")

	// ignored: not a year, year out of range, stray file in a year dir
	writeStoreFile(t, filepath.Join(inDir, "archive", "03-05"), "sensor_t", "value\t1\t+\t1\n")
	writeStoreFile(t, filepath.Join(inDir, "2005", "03-05"), "sensor_t", "value\t1\t+\t1\n")
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "2021", "README"), []byte("x"), 0o644))

	c, err := NewConverter(inDir, outDir, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, c.Run())

	for _, name := range []string{"2021-03-05", dict.KeyDictFile, dict.ValueDictFile} {
		_, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "output must contain %s", name)
	}

	dicts, err := dict.LoadDicts(outDir)
	require.NoError(t, err)

	cat, err := dicts.KeyIndex([]byte("sensor_t"))
	require.NoError(t, err)
	subValue, err := dicts.KeyIndex([]byte("value"))
	require.NoError(t, err)
	subStatus, err := dicts.KeyIndex([]byte("status"))
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(outDir, "2021-03-05"))
	require.NoError(t, err)
	defer file.Close()

	want := []record.Entry{
		{CatIndex: cat, SubIndex: subValue, Timestamp: 1614902400.5, Value: []byte("12.5")},
		{CatIndex: cat, SubIndex: subStatus, Timestamp: 1614902401, Value: []byte("'ok: running")},
		{CatIndex: cat, SubIndex: subValue, Timestamp: 1614902402, Value: []byte("-"), Expiring: true},
	}

	r := dayfile.NewReader(file, dicts)
	for i, expected := range want {
		got, err := r.Next()
		require.NoError(t, err, "record %d", i)
		require.Equal(t, expected, got, "record %d", i)
	}

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF, "malformed lines and skipped years must not produce records")
}

func TestConverter_SharedDictsAcrossRuns(t *testing.T) {
	inDir := t.TempDir()
	writeStoreFile(t, filepath.Join(inDir, "2021", "01-01"), "sensor_t", "value\t1\t+\t'shared\n")

	dicts := dict.NewDicts()

	first, err := NewConverter(inDir, filepath.Join(t.TempDir(), "a"), WithDicts(dicts), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, first.Run())

	keyCount := dicts.KeyCount()

	second, err := NewConverter(inDir, filepath.Join(t.TempDir(), "b"), WithDicts(dicts), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, second.Run())

	require.Equal(t, keyCount, dicts.KeyCount(), "re-converting the same names must not assign new indices")
}

func TestConverter_SkipsMalformedDayDirs(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	for _, name := range []string{"01-02-extra", "0102", "ab-cd", "0305"} {
		writeStoreFile(t, filepath.Join(inDir, "2021", name), "sensor_t", "value\t1\t+\t1\n")
	}
	writeStoreFile(t, filepath.Join(inDir, "2021", "03-05"), "sensor_t", "value\t1\t+\t1\n")

	c, err := NewConverter(inDir, outDir, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, c.Run())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.ElementsMatch(t, []string{"2021-03-05", dict.KeyDictFile, dict.ValueDictFile}, names,
		"only strict MM-DD directories become day files")
}

func TestConverter_OutDirMustBeEmpty(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "stale"), []byte("x"), 0o644))

	c, err := NewConverter(inDir, outDir, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.ErrorIs(t, c.Run(), errs.ErrOutDirNotEmpty)
}

func TestConverter_MalformedTimestampFailsRun(t *testing.T) {
	inDir := t.TempDir()
	writeStoreFile(t, filepath.Join(inDir, "2021", "01-01"), "sensor_t", "value\tnot-a-number\t+\t1\n")

	c, err := NewConverter(inDir, filepath.Join(t.TempDir(), "out"), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Error(t, c.Run(), "a malformed timestamp on a well-formed line is a contract violation")
}

func TestConverter_InvalidYearRange(t *testing.T) {
	_, err := NewConverter(t.TempDir(), t.TempDir(), WithYearRange(2030, 2020))
	require.Error(t, err)
}

func TestConverter_MissingInputDir(t *testing.T) {
	c, err := NewConverter(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out"), WithLogger(quietLogger()))
	require.NoError(t, err)
	require.Error(t, c.Run())
}
