// Package record implements the cache record codec: turning one cache entry
// into its 16-byte-header-plus-payload binary form and back.
//
// Each value is stored in exactly one of three representations, chosen in
// priority order:
//
//  1. Dictionary-indexed: string-typed values (first byte ' or () and the
//     bare "-" sentinel collapse to a value-dictionary index with no payload.
//  2. Nibble-packed: values using only the 16-symbol numeric alphabet pack
//     two bytes per payload byte.
//  3. Literal: everything else is stored verbatim.
//
// Mode selection is a total, deterministic function of the value bytes, so
// every value has exactly one encoding outcome.
package record

import (
	"errors"
	"io"

	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/encoding"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/internal/pool"
	"github.com/arloliu/compactcache/section"
)

// Entry is one cache record before encoding or after decoding.
type Entry struct {
	CatIndex  uint16
	SubIndex  uint16
	Timestamp float64
	Value     []byte
	Expiring  bool
}

// Encoder encodes entries into their on-disk record form, accumulating them
// in a pooled buffer until written out.
//
// An Encoder is single-owner and not safe for concurrent use; the shared
// dictionaries serialize internally.
type Encoder struct {
	buf   *pool.ByteBuffer
	dicts *dict.Dicts
	count int
}

// NewEncoder creates an encoder resolving value indices through dicts.
func NewEncoder(dicts *dict.Dicts) *Encoder {
	return &Encoder{
		dicts: dicts,
		buf:   pool.GetRecordBuffer(),
	}
}

// Encode appends the record form of entry to the internal buffer.
func (e *Encoder) Encode(entry Entry) error {
	value := entry.Value

	flag, indexed, err := e.selectMode(value)
	if err != nil {
		return err
	}
	if entry.Expiring {
		flag = flag.WithExpiring()
	}

	hdr := section.Header{
		Flag:      flag,
		CatIndex:  entry.CatIndex,
		SubIndex:  entry.SubIndex,
		Timestamp: entry.Timestamp,
	}

	e.buf.Grow(section.HeaderSize + len(value))
	e.buf.B = hdr.AppendTo(e.buf.B)

	switch {
	case indexed:
		// index lives in the header word, zero payload bytes
	case flag.IsEncoded():
		e.buf.B = encoding.PackNumeric(e.buf.B, value)
	default:
		e.buf.MustWrite(value)
	}

	e.count++

	return nil
}

// selectMode picks the value representation in priority order (indexed,
// encoded, literal) and returns the corresponding flag word.
func (e *Encoder) selectMode(value []byte) (section.Flag, bool, error) {
	if idx, ok, err := e.valueIndex(value); err != nil {
		return section.Flag{}, false, err
	} else if ok {
		flag, err := section.IndexedFlag(idx)
		return flag, true, err
	}

	if len(value) > 0 && encoding.IsNumeric(value) {
		flag, err := section.EncodedFlag(len(value))
		return flag, false, err
	}

	flag, err := section.LiteralFlag(len(value))

	return flag, false, err
}

// valueIndex resolves values that take the dictionary representation: values
// whose first byte is ' or ( and the single-byte "-" sentinel. It reports
// ok=false when the value does not trigger dictionary mode or when the value
// dictionary cannot serve it (overflow, delimiter byte, or an index too wide
// for the header field); the encoder then falls back to a non-dictionary
// representation.
func (e *Encoder) valueIndex(value []byte) (uint32, bool, error) {
	if len(value) == 0 {
		return 0, false, nil
	}
	if value[0] != '\'' && value[0] != '(' && !(len(value) == 1 && value[0] == '-') {
		return 0, false, nil
	}

	idx, err := e.dicts.ValueIndex(value)
	if errors.Is(err, errs.ErrDictOverflow) || errors.Is(err, errs.ErrDelimiterByte) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if idx > section.MaxIndexedValue {
		return 0, false, nil
	}

	return idx, true, nil
}

// Bytes returns the accumulated records. The slice shares the internal
// buffer; do not retain it across further Encode calls.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Size returns the number of buffered bytes.
func (e *Encoder) Size() int {
	return e.buf.Len()
}

// Count returns the number of records encoded since creation.
func (e *Encoder) Count() int {
	return e.count
}

// WriteTo writes the buffered records to w and empties the buffer so the
// encoder can keep going. The record count is preserved.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	n, err := e.buf.WriteTo(w)
	e.buf.Reset()

	return n, err
}

// Reset returns the internal buffer to the pool. The encoder must not be
// used afterwards.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutRecordBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
