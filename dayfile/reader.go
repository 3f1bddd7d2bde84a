package dayfile

import (
	"bufio"
	"errors"
	"io"

	"github.com/arloliu/compactcache/dict"
	"github.com/arloliu/compactcache/errs"
	"github.com/arloliu/compactcache/record"
	"github.com/arloliu/compactcache/section"
)

// Reader sequentially decodes the records of one day file.
// There is no random access: day files carry no index, readers consume them
// front to back.
type Reader struct {
	r     *bufio.Reader
	dicts *dict.Dicts
	hdr   [section.HeaderSize]byte
}

// NewReader creates a reader decoding records from r with the given
// dictionaries, which must be the ones the file was written with.
func NewReader(r io.Reader, dicts *dict.Dicts) *Reader {
	return &Reader{
		r:     bufio.NewReader(r),
		dicts: dicts,
	}
}

// Next returns the next record. It returns io.EOF at a clean end of file and
// errs.ErrShortRecord when the file ends mid-record.
func (r *Reader) Next() (record.Entry, error) {
	if _, err := io.ReadFull(r.r, r.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return record.Entry{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return record.Entry{}, errs.ErrShortRecord
		}

		return record.Entry{}, err
	}

	var hdr section.Header
	if err := hdr.Parse(r.hdr[:]); err != nil {
		return record.Entry{}, err
	}

	payload := make([]byte, hdr.PayloadSize())
	if _, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return record.Entry{}, errs.ErrShortRecord
		}

		return record.Entry{}, err
	}

	value, err := record.Decode(&hdr, payload, r.dicts)
	if err != nil {
		return record.Entry{}, err
	}

	return record.Entry{
		CatIndex:  hdr.CatIndex,
		SubIndex:  hdr.SubIndex,
		Timestamp: hdr.Timestamp,
		Value:     value,
		Expiring:  hdr.Flag.IsExpiring(),
	}, nil
}
