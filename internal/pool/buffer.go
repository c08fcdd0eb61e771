// Package pool provides reusable copy buffers for streaming object
// bodies to disk without allocating a fresh buffer per download.
package pool

import "sync"

// CopyBufferSize is the size of each pooled copy buffer (64KB).
const CopyBufferSize = 64 * 1024

var buffers = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, CopyBufferSize)
		return &buf
	},
}

// GetBuffer returns a copy buffer from the pool. The caller must hand
// it back with PutBuffer when the transfer finishes.
func GetBuffer() []byte {
	return *buffers.Get().(*[]byte)
}

// PutBuffer returns a buffer obtained from GetBuffer to the pool.
// The buffer must not be used after the call.
func PutBuffer(buf []byte) {
	if cap(buf) != CopyBufferSize {
		return
	}
	buf = buf[:CopyBufferSize]
	buffers.Put(&buf)
}
