package buffer

import "io"

// Buffer holds the samples of one channel plus a read cursor.
// Reads consume from the cursor; writes append to the end.
type Buffer struct {
	samples []int32
	pos     int
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]int32, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []int32) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []int32 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Grow ensures capacity is at least n, preserving existing data.
func (b *Buffer) Grow(n int) {
	if n <= cap(b.samples) {
		return
	}
	grown := make([]int32, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Reset empties the buffer and rewinds the cursor, keeping capacity.
func (b *Buffer) Reset() {
	b.samples = b.samples[:0]
	b.pos = 0
}

// FrameCount returns the number of samples held.
func (b *Buffer) FrameCount() int64 {
	return int64(len(b.samples))
}

// ReadNext returns the sample under the cursor and advances it.
// It returns io.EOF once every sample has been read.
func (b *Buffer) ReadNext() (int32, error) {
	if b.pos >= len(b.samples) {
		return 0, io.EOF
	}
	v := b.samples[b.pos]
	b.pos++
	return v, nil
}

// Rewind moves the read cursor back to the first sample.
func (b *Buffer) Rewind() error {
	b.pos = 0
	return nil
}

// Write appends v.
func (b *Buffer) Write(v int32) error {
	b.samples = append(b.samples, v)
	return nil
}

// Copy returns a deep copy of the samples with a fresh cursor.
func (b *Buffer) Copy() *Buffer {
	s := make([]int32, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}
