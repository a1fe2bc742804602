// Package wavio reads and writes 16-bit PCM WAV files for the leveler.
//
// Files are decoded with github.com/go-audio/wav. ChannelReader streams one
// channel of a file block by block and satisfies the leveler's Source: its
// Rewind reopens the file so the second pass never needs the whole input in
// memory. WriteFile interleaves per-channel sample slices and replaces the
// destination atomically.
package wavio
