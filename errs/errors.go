// Package errs defines the sentinel errors shared across compactcache packages.
//
// Call sites wrap these with fmt.Errorf and %w to add the file or day being
// processed, so callers can still match with errors.Is.
package errs

import "errors"

var (
	// ErrDictOverflow is returned when a dictionary has no free index left for
	// a new string.
	ErrDictOverflow = errors.New("dictionary index space exhausted")

	// ErrDelimiterByte is returned when a string offered to a dictionary
	// contains the persisted-form line terminator and therefore could not be
	// round-tripped through the keys/values files.
	ErrDelimiterByte = errors.New("string contains the dictionary line terminator")

	// ErrHashCollision is returned when two distinct strings map to the same
	// 64-bit hash inside a dictionary.
	ErrHashCollision = errors.New("dictionary hash collision detected")

	// ErrIndexRange is returned when a dictionary or flag index is out of the
	// assigned or representable range.
	ErrIndexRange = errors.New("index out of range")

	// ErrInvalidHeaderSize is returned when a record header is not exactly
	// section.HeaderSize bytes.
	ErrInvalidHeaderSize = errors.New("invalid record header size")

	// ErrInvalidFlags is returned when a header word carries an impossible
	// flag combination.
	ErrInvalidFlags = errors.New("invalid record header flags")

	// ErrValueTooLong is returned when a value does not fit the header length
	// field. Values here are expected to be sub-kilobyte; this indicates a
	// logic error in the source system, never a condition to truncate around.
	ErrValueTooLong = errors.New("value too long for record header")

	// ErrPayloadSize is returned when a record payload does not match the
	// length recorded in its header.
	ErrPayloadSize = errors.New("record payload size mismatch")

	// ErrShortRecord is returned when a day file ends in the middle of a
	// record, e.g. after a crashed writer.
	ErrShortRecord = errors.New("truncated record at end of day file")

	// ErrOutDirNotEmpty is returned when the conversion output directory
	// already exists and contains entries.
	ErrOutDirNotEmpty = errors.New("output directory exists and is not empty")
)
