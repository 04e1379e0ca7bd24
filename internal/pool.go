package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds scratch buffers for encoding events.
var BufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool. buf must not be used afterwards.
func PutBuffer(buf *bytes.Buffer) {
	BufferPool.Put(buf)
}
