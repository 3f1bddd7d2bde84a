package dict

import (
	"fmt"
	"path/filepath"
	"sync"
)

const (
	// KeyDictFile is the persisted file name of the key dictionary.
	KeyDictFile = "keys"
	// ValueDictFile is the persisted file name of the value dictionary.
	ValueDictFile = "values"

	// KeyDictCapacity bounds the key dictionary; category and subkey indices
	// must fit the 16-bit header fields.
	KeyDictCapacity = 1 << 16
	// ValueDictCapacity bounds the value dictionary; value indices share a
	// 32-bit header word with two flag bits.
	ValueDictCapacity = 1<<30 - 1
)

// noValue is the sentinel pre-seeded at value index 0.
var noValue = []byte("-")

// Dicts bundles the key dictionary (categories and subkeys, shared namespace)
// and the value dictionary. A single mutex guards both, so independent
// per-day workers may share one pair; index assignment stays globally
// consistent and monotonic.
type Dicts struct {
	mu   sync.Mutex
	keys *Dict
	vals *Dict
}

// NewDicts creates a fresh dictionary pair. The value dictionary is
// pre-seeded with the "-" no-value sentinel so it always maps to index 0.
func NewDicts() *Dicts {
	return NewDictsWithCapacity(KeyDictCapacity, ValueDictCapacity)
}

// NewDictsWithCapacity creates a dictionary pair with explicit bounds.
// Production code uses NewDicts; the smaller bounds exist for exercising
// overflow behavior.
func NewDictsWithCapacity(keyCap, valueCap uint32) *Dicts {
	vals := New(valueCap)
	vals.IndexOf(noValue) //nolint:errcheck // fresh dictionary, cannot fail

	return &Dicts{
		keys: New(keyCap),
		vals: vals,
	}
}

// LoadDicts reconstructs a pair from the keys and values files in dir.
func LoadDicts(dir string) (*Dicts, error) {
	keys, err := LoadFile(filepath.Join(dir, KeyDictFile), KeyDictCapacity)
	if err != nil {
		return nil, err
	}

	vals, err := LoadFile(filepath.Join(dir, ValueDictFile), ValueDictCapacity)
	if err != nil {
		return nil, err
	}

	return &Dicts{keys: keys, vals: vals}, nil
}

// Save persists both dictionaries into dir. Call once, after all index
// assignments for the run are complete.
func (d *Dicts) Save(dir string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.keys.SaveFile(filepath.Join(dir, KeyDictFile)); err != nil {
		return err
	}

	return d.vals.SaveFile(filepath.Join(dir, ValueDictFile))
}

// KeyIndex resolves a category or subkey name to its 16-bit index, assigning
// one if needed. Overflow here is fatal for the run: there is no fallback
// encoding for keys.
func (d *Dicts) KeyIndex(key []byte) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx, err := d.keys.IndexOf(key)
	if err != nil {
		return 0, fmt.Errorf("key dictionary: %w", err)
	}

	return uint16(idx), nil //nolint:gosec // bounded by KeyDictCapacity
}

// ValueIndex resolves a value to its dictionary index, assigning one if
// needed. Callers that can fall back to a non-dictionary representation
// should match errs.ErrDictOverflow with errors.Is.
func (d *Dicts) ValueIndex(val []byte) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx, err := d.vals.IndexOf(val)
	if err != nil {
		return 0, fmt.Errorf("value dictionary: %w", err)
	}

	return idx, nil
}

// Key returns the name assigned to a key index.
func (d *Dicts) Key(index uint16) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.keys.StringAt(uint32(index))
}

// Value returns the bytes assigned to a value index.
func (d *Dicts) Value(index uint32) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.vals.StringAt(index)
}

// KeyCount returns the number of assigned key entries.
func (d *Dicts) KeyCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.keys.Len()
}

// ValueCount returns the number of assigned value entries.
func (d *Dicts) ValueCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.vals.Len()
}
