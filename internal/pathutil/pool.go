package pathutil

import "sync"

// Pooled builders start with room for pointers this deep; builders that
// grew past maxPooledDepth are dropped instead of returned.
const (
	pooledDepth    = 8
	maxPooledDepth = 64
)

var pointerPool = sync.Pool{
	New: func() any {
		return &PointerBuilder{segments: make([]string, 0, pooledDepth)}
	},
}

// Get returns an empty PointerBuilder from the pool. Callers walking a
// document should Put it back when the walk ends.
func Get() *PointerBuilder {
	b := pointerPool.Get().(*PointerBuilder)
	b.Reset()
	return b
}

// Put returns b to the pool.
func Put(b *PointerBuilder) {
	if b == nil || cap(b.segments) > maxPooledDepth {
		return
	}
	pointerPool.Put(b)
}
