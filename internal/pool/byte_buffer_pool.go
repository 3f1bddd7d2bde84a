package pool

import (
	"io"
	"sync"
)

const (
	// RecordBufferDefaultSize is the initial capacity of pooled record
	// buffers. Records are a 16-byte header plus a sub-kilobyte payload, so a
	// few KiB covers a batch comfortably.
	RecordBufferDefaultSize = 4 * 1024
	// RecordBufferMaxThreshold caps the capacity of buffers returned to the
	// pool; anything larger is dropped to avoid retaining bloat.
	RecordBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a minimal append-oriented byte buffer shared through a pool.
type ByteBuffer struct {
	// B is the underlying byte slice, exposed for append-style encoding.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer while keeping its allocation.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures the buffer can take n more bytes without reallocating.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(n, RecordBufferDefaultSize))
	copy(grown, bb.B)
	bb.B = grown
}

// MustWrite appends data, growing the buffer as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteTo writes the buffered bytes to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

var recordPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, RecordBufferDefaultSize)}
	},
}

// GetRecordBuffer retrieves a ByteBuffer from the record pool.
func GetRecordBuffer() *ByteBuffer {
	bb, _ := recordPool.Get().(*ByteBuffer)
	return bb
}

// PutRecordBuffer returns a ByteBuffer to the record pool.
// Oversized buffers are discarded rather than pooled.
func PutRecordBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > RecordBufferMaxThreshold {
		return
	}

	bb.Reset()
	recordPool.Put(bb)
}
