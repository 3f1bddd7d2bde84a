// Package encoding implements the nibble codec for numeric cache values.
//
// Values consisting only of the 16-symbol numeric alphabet (digits, decimal
// point, comma, minus, brackets and the exponent marker) are packed two input
// bytes per output byte, halving storage for the common case of scalar and
// array-literal readings.
package encoding

import "github.com/arloliu/compactcache/errs"

// NumericAlphabet is the 16-symbol alphabet of nibble-packable values.
// The position of each symbol is its nibble value; this exact order is part
// of the on-disk format and must match between encode and decode.
const NumericAlphabet = "0123456789.,-[]e"

// invalidNibble marks bytes outside NumericAlphabet in the reverse table.
const invalidNibble = 0xFF

var nibbleValue [256]uint8

func init() {
	for i := range nibbleValue {
		nibbleValue[i] = invalidNibble
	}
	for i := range len(NumericAlphabet) {
		nibbleValue[NumericAlphabet[i]] = uint8(i)
	}
}

// IsNumeric reports whether every byte of val belongs to NumericAlphabet.
// The empty value vacuously qualifies; a single byte outside the alphabet
// disqualifies the whole value.
func IsNumeric(val []byte) bool {
	for _, b := range val {
		if nibbleValue[b] == invalidNibble {
			return false
		}
	}

	return true
}

// PackNumeric appends the nibble-packed form of src to dst and returns the
// extended slice. The first of each input byte pair lands in the low nibble,
// the second in the high nibble; a trailing odd byte leaves the high nibble
// zero. The packed size is (len(src)+1)/2 bytes.
//
// src must satisfy IsNumeric; bytes outside the alphabet are a caller bug and
// produce an unrecoverable packed form.
func PackNumeric(dst, src []byte) []byte {
	for i := 0; i+1 < len(src); i += 2 {
		dst = append(dst, nibbleValue[src[i]]|nibbleValue[src[i+1]]<<4)
	}
	if len(src)%2 == 1 {
		dst = append(dst, nibbleValue[src[len(src)-1]])
	}

	return dst
}

// UnpackNumeric appends the unpacked form of src to dst and returns the
// extended slice. origLen is the unpacked length recorded in the record
// header; the result is truncated to it, discarding the zero high nibble of
// a trailing odd byte.
func UnpackNumeric(dst, src []byte, origLen int) ([]byte, error) {
	if origLen < 0 || len(src) != (origLen+1)/2 {
		return nil, errs.ErrPayloadSize
	}

	for i := range origLen {
		b := src[i/2]
		if i%2 == 1 {
			b >>= 4
		}
		dst = append(dst, NumericAlphabet[b&0x0F])
	}

	return dst, nil
}
