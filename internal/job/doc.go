// Package job levels WAV files: it routes input channels to output channels
// through adjust or copy operations, runs them in parallel and writes the
// result only when every operation succeeded. Watch levels every WAV file
// that appears in a directory.
package job
