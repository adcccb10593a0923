// Package pool provides sync.Pool backed buffers for the per-frame string
// building done by the terminal host and for image encoding.
package pool

import (
	"strings"
	"sync"
)

// byteSliceSize is the length of slices handed out by GetByteSlice.
const byteSliceSize = 32 * 1024

var stringBuilderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

var byteSlicePool = sync.Pool{
	New: func() any {
		b := make([]byte, byteSliceSize)
		return &b
	},
}

// GetStringBuilder returns an empty builder.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool. Builders that grew
// past a frame's worth of output are dropped.
func PutStringBuilder(sb *strings.Builder) {
	if sb.Cap() > 4<<20 {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// GetByteSlice returns a slice of byteSliceSize bytes. Its contents are
// unspecified.
func GetByteSlice() *[]byte {
	return byteSlicePool.Get().(*[]byte)
}

// PutByteSlice returns buf to the pool. Slices of another size are dropped.
func PutByteSlice(buf *[]byte) {
	if buf == nil || cap(*buf) != byteSliceSize {
		return
	}
	*buf = (*buf)[:byteSliceSize]
	byteSlicePool.Put(buf)
}
