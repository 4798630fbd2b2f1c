package util

import "sync"

// ChunkSize is the size of the buffers used to stream decoded payloads
// to disk (8 KiB).
const ChunkSize = 8 * 1024

// BufPool provides reusable chunk buffers so repeated BIND commands
// within one window do not allocate a fresh buffer each time.
var BufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ChunkSize)
		return &buf
	},
}

// GetBuf retrieves a buffer from the pool.  Callers must return it
// with [PutBuf] when finished.
func GetBuf() *[]byte {
	return BufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	BufPool.Put(buf)
}
