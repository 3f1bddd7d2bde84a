package section

import "github.com/arloliu/compactcache/errs"

// Flag is the packed 32-bit word at offset 0 of every record header.
//
// Bit layout:
//   - bits 0-29: unpacked value length (encoded and literal records)
//   - bits 0-28: value-dictionary index (indexed records)
//   - bit 29: INDEXED flag, value is a value-dictionary index
//   - bit 30: ENCODED flag, payload is nibble-packed
//   - bit 31: EXPIRING flag, record marks an expiry rather than an assignment
//
// At most one of INDEXED/ENCODED is ever set. The constructors below are the
// only way to build a Flag, which keeps that invariant in one place; lengths
// are capped at MaxValueLength so a literal or encoded length can never set
// bit 29 and masquerade as an indexed record.
type Flag struct {
	word uint32
}

// LiteralFlag returns the flag word for a literal-payload record of the given
// unpacked value length.
func LiteralFlag(length int) (Flag, error) {
	if length < 0 || uint32(length) > MaxValueLength {
		return Flag{}, errs.ErrValueTooLong
	}

	return Flag{word: uint32(length)}, nil
}

// EncodedFlag returns the flag word for a nibble-packed record. The length is
// the original, unpacked value length; the payload itself is (length+1)/2
// bytes.
func EncodedFlag(length int) (Flag, error) {
	if length < 0 || uint32(length) > MaxValueLength {
		return Flag{}, errs.ErrValueTooLong
	}

	return Flag{word: uint32(length) | FlagEncoded}, nil
}

// IndexedFlag returns the flag word for a dictionary-indexed record carrying
// no payload.
func IndexedFlag(index uint32) (Flag, error) {
	if index > MaxIndexedValue {
		return Flag{}, errs.ErrIndexRange
	}

	return Flag{word: index | FlagIndexed}, nil
}

// ParseFlag interprets a raw header word read from disk.
// It rejects words with both INDEXED and ENCODED set; such a word can only
// come from a corrupt file or an over-long encoded length.
func ParseFlag(word uint32) (Flag, error) {
	if word&FlagIndexed != 0 && word&FlagEncoded != 0 {
		return Flag{}, errs.ErrInvalidFlags
	}

	return Flag{word: word}, nil
}

// WithExpiring returns a copy of the flag with the EXPIRING bit set.
// The expiry status is supplied by the caller, never derived from the value.
func (f Flag) WithExpiring() Flag {
	f.word |= FlagExpiring
	return f
}

// IsIndexed reports whether the value is stored as a value-dictionary index.
func (f Flag) IsIndexed() bool {
	return f.word&FlagIndexed != 0 && f.word&FlagEncoded == 0
}

// IsEncoded reports whether the payload is nibble-packed.
func (f Flag) IsEncoded() bool {
	return f.word&FlagEncoded != 0
}

// IsExpiring reports whether the record marks an expiry.
func (f Flag) IsExpiring() bool {
	return f.word&FlagExpiring != 0
}

// Length returns the unpacked value length of an encoded or literal record.
func (f Flag) Length() int {
	return int(f.word & LengthMask)
}

// Index returns the value-dictionary index of an indexed record.
func (f Flag) Index() uint32 {
	return f.word & IndexMask
}

// Word returns the raw 32-bit header word.
func (f Flag) Word() uint32 {
	return f.word
}
