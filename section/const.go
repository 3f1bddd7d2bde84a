package section

import "math"

const (
	// HeaderSize is the fixed record header size in bytes.
	HeaderSize = 16

	// Flag bits in the 32-bit header word.
	FlagIndexed  = uint32(1) << 29 // value stored as a value-dictionary index, no payload
	FlagEncoded  = uint32(1) << 30 // value stored nibble-packed
	FlagExpiring = uint32(1) << 31 // record marks the key as expired at its timestamp

	// LengthMask covers bits 0-29, the unpacked value length field of encoded
	// and literal records.
	LengthMask = uint32(1)<<30 - 1
	// IndexMask covers bits 0-28, the value-dictionary index field of indexed
	// records. Bit 29 is the INDEXED flag itself.
	IndexMask = uint32(1)<<29 - 1

	// MaxKeyIndex is the largest category or subkey index.
	MaxKeyIndex = math.MaxUint16
	// MaxValueLength is the largest value length a header can record. Kept
	// below bit 29 so a length can never alias the INDEXED flag.
	MaxValueLength = IndexMask
	// MaxIndexedValue is the largest value-dictionary index representable in
	// an indexed record. The encoder falls back to the encoded or literal
	// representation for indices above it.
	MaxIndexedValue = IndexMask
)
