// Package section defines the on-disk record header: the packed 32-bit flag
// word and the fixed 16-byte header that precedes every record payload in a
// day file.
//
// The flag word multiplexes three concerns in one little-endian uint32: the
// value length or dictionary index in the low bits, the value-representation
// mode in bits 29-30, and the expiry marker in bit 31. All flag manipulation
// goes through the Flag type so the at-most-one-of-INDEXED/ENCODED invariant
// is enforced in a single place.
package section
