// Package buffer provides an int32 PCM channel buffer that can be read
// sequentially, rewound and appended to. A Buffer satisfies the leveler's
// Source and Sink interfaces, which lets a channel be replayed from memory
// for the second pass. Pool recycles buffers between files.
package buffer
