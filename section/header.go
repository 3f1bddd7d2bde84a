package section

import (
	"math"

	"github.com/arloliu/compactcache/endian"
	"github.com/arloliu/compactcache/errs"
)

// Header is the fixed 16-byte header preceding every record payload.
//
// Layout (little-endian):
//
//	bytes 0-3   flag word (see Flag)
//	bytes 4-5   category index
//	bytes 6-7   subkey index
//	bytes 8-15  IEEE-754 timestamp, seconds since the epoch, possibly fractional
type Header struct {
	Flag      Flag
	CatIndex  uint16
	SubIndex  uint16
	Timestamp float64
}

// Bytes serializes the header into a fresh 16-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to buf and returns the extended
// slice. This is the allocation-free path used by the record encoder.
func (h *Header) AppendTo(buf []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	buf = engine.AppendUint32(buf, h.Flag.Word())
	buf = engine.AppendUint16(buf, h.CatIndex)
	buf = engine.AppendUint16(buf, h.SubIndex)
	buf = engine.AppendUint64(buf, math.Float64bits(h.Timestamp))

	return buf
}

// Parse fills the header from a byte slice.
// It returns an error if data is not exactly HeaderSize bytes or the flag
// word is invalid.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	flag, err := ParseFlag(engine.Uint32(data[0:4]))
	if err != nil {
		return err
	}

	h.Flag = flag
	h.CatIndex = engine.Uint16(data[4:6])
	h.SubIndex = engine.Uint16(data[6:8])
	h.Timestamp = math.Float64frombits(engine.Uint64(data[8:16]))

	return nil
}

// PayloadSize returns the number of payload bytes that follow the header on
// disk: zero for indexed records, the packed size for encoded records, the
// raw length for literal records.
func (h *Header) PayloadSize() int {
	switch {
	case h.Flag.IsIndexed():
		return 0
	case h.Flag.IsEncoded():
		return (h.Flag.Length() + 1) / 2
	default:
		return h.Flag.Length()
	}
}
