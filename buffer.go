package logcore

import (
	"io"
	"sync"
)

// Pooled buffers, modeled on the way quay/zlog's v2 handler pools buffers
// (itself modeled on the standard library's slog.JSONHandler).

// bufPool is the global pool of buffers.
var bufPool = sync.Pool{
	New: func() any {
		n := make([]byte, 0, 1024)
		return (*buffer)(&n)
	},
}

// buffer is a byte buffer implemented over a slice.
//
// Implementing it this way makes all the helper functions methods instead of
// just free functions.
type buffer []byte

// newBuffer returns a buffer from the global pool, allocating if necessary.
func newBuffer() *buffer {
	return bufPool.Get().(*buffer)
}

// Release returns modestly sized buffers back to the [bufPool] and leaks
// large buffers.
//
// As a convenience, this may be called on a nil receiver.
func (b *buffer) Release() {
	const maxSz = 16 << 10
	if b == nil {
		return
	}
	if cap(*b) <= maxSz {
		*b = (*b)[:0]
		bufPool.Put(b)
	}
}

// Clone returns a new buffer with the contents of the receiver. The returned
// buffer is not yet tracked by the pool and must be Released by the caller.
func (b *buffer) Clone() (out *buffer) {
	out = newBuffer()
	if b == nil {
		return out
	}
	if cap(*b) > cap(*out) {
		*out = make([]byte, len(*b), cap(*b))
	}
	if len(*b) > len(*out) {
		*out = (*out)[:len(*b)]
	}
	copy(*out, *b)
	return out
}

var (
	_ io.Writer       = (*buffer)(nil)
	_ io.StringWriter = (*buffer)(nil)
	_ io.ByteWriter   = (*buffer)(nil)
)

// WriteString implements [io.StringWriter].
func (b *buffer) WriteString(s string) (int, error) {
	*b = append(*b, s...)
	return len(s), nil
}

// WriteByte implements [io.ByteWriter].
func (b *buffer) WriteByte(c byte) error {
	*b = append(*b, c)
	return nil
}

// Write implements [io.Writer].
func (b *buffer) Write(in []byte) (int, error) {
	*b = append(*b, in...)
	return len(in), nil
}
