// Package endian provides byte order utilities for the record codec.
//
// The on-disk record format is fixed little-endian; the big-endian engine
// exists for tests and diagnostic tooling. EndianEngine combines ByteOrder and
// AppendByteOrder from encoding/binary so codecs can both fill fixed slices
// and append to growing buffers through the same value.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder into a single interface.
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the engine used by the on-disk record format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
