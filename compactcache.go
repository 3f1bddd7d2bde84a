// Package compactcache implements a compact, append-only binary encoding for
// time-series cache records, plus the string-interning dictionaries that keep
// it small.
//
// A record stores "key K had value V at time T" for an instrument-control
// cache. On disk it is a fixed 16-byte little-endian header followed by a
// variable payload:
//
//	bytes 0-3   flag word: value length or dictionary index, plus the
//	            INDEXED (bit 29), ENCODED (bit 30) and EXPIRING (bit 31) flags
//	bytes 4-5   category index into the key dictionary
//	bytes 6-7   subkey index into the key dictionary
//	bytes 8-15  IEEE-754 timestamp in seconds
//
// Values take one of three representations, chosen in priority order:
// string-typed values (leading ' or () and the "-" sentinel collapse to a
// value-dictionary index with no payload; values built only from the
// 16-symbol numeric alphabet are nibble-packed at two bytes per payload byte;
// everything else is stored verbatim.
//
// # Package Structure
//
// The section package defines the header and flag word, encoding the nibble
// codec, dict the bounded dictionaries, record the codec proper, dayfile the
// per-day append store, and convert the legacy flatfile converter behind the
// convert command.
//
// # Basic Usage
//
// Writing one day of records:
//
//	dicts := compactcache.NewDicts()
//	w, _ := dayfile.Create(filepath.Join(out, dayfile.Filename(2024, 3, 5)), dicts)
//	cat, _ := dicts.KeyIndex([]byte("sensor_t"))
//	_ = w.AddEntryKey(cat, []byte("value"), []byte("12.5"), 1709600000.25, false)
//	_ = w.Close()
//	_ = dicts.Save(out)
//
// Reading it back:
//
//	dicts, _ := compactcache.LoadDicts(out)
//	f, _ := os.Open(filepath.Join(out, "2024-03-05"))
//	r := dayfile.NewReader(f, dicts)
//	for e, err := r.Next(); err == nil; e, err = r.Next() {
//	    fmt.Printf("%d/%d %f %q\n", e.CatIndex, e.SubIndex, e.Timestamp, e.Value)
//	}
package compactcache

import (
	"github.com/arloliu/compactcache/convert"
	"github.com/arloliu/compactcache/dict"
)

// NewDicts creates a fresh dictionary pair with the standard bounds: 65536
// key entries and 2^30-1 value entries, the value dictionary pre-seeded with
// the "-" sentinel at index 0.
func NewDicts() *dict.Dicts {
	return dict.NewDicts()
}

// LoadDicts reconstructs a dictionary pair from the keys and values files in
// dir.
func LoadDicts(dir string) (*dict.Dicts, error) {
	return dict.LoadDicts(dir)
}

// Convert runs a one-shot conversion of a legacy flatfile cache database
// into the compact format.
func Convert(inDir, outDir string, opts ...convert.Option) error {
	c, err := convert.NewConverter(inDir, outDir, opts...)
	if err != nil {
		return err
	}

	return c.Run()
}
