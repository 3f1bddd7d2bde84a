package record

import (
	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/encoding"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/section"
)

// Decode reconstructs the value bytes of a record from its parsed header and
// payload, the inverse of Encoder.Encode.
//
// For literal records the returned slice aliases payload; for indexed records
// it aliases the dictionary entry. Callers that retain the value must copy.
func Decode(hdr *section.Header, payload []byte, dicts *dict.Dicts) ([]byte, error) {
	switch {
	case hdr.Flag.IsIndexed():
		if len(payload) != 0 {
			return nil, errs.ErrPayloadSize
		}

		return dicts.Value(hdr.Flag.Index())
	case hdr.Flag.IsEncoded():
		return encoding.UnpackNumeric(make([]byte, 0, hdr.Flag.Length()), payload, hdr.Flag.Length())
	default:
		if len(payload) != hdr.Flag.Length() {
			return nil, errs.ErrPayloadSize
		}

		return payload, nil
	}
}
