package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given byte string.
// Dictionaries key their lookup maps by this hash and verify the stored bytes
// on every hit to rule out collisions.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
