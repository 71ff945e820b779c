// ABOUTME: Pooled byte buffer that one redraw is assembled in before a single device write
// ABOUTME: Recycled via sync.Pool so steady-state rendering does not allocate

package tui

import (
	"bytes"
	"sync"
)

const maxPooledFrame = 1 << 20

var framePool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func acquireFrame() *bytes.Buffer {
	buf := framePool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// releaseFrame drops oversized buffers instead of pinning them in the pool.
func releaseFrame(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledFrame {
		return
	}
	buf.Reset()
	framePool.Put(buf)
}
