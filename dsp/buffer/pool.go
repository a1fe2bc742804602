package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse so that watch mode does not
// reallocate channel storage for every file.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns an empty Buffer with room for at least capacity samples.
// Callers must return it via Put when done.
func (p *Pool) Get(capacity int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Reset()
	b.Grow(capacity)
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
