package wavio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ChannelReader streams the samples of one channel of a WAV file.
// It is not safe for concurrent use; open one reader per goroutine.
type ChannelReader struct {
	path      string
	channel   int
	blockSize int
	info      Info

	f   *os.File
	dec *wav.Decoder
	buf *audio.IntBuffer

	blockFrames int
	blockPos    int
	read        int64
}

// OpenChannel opens channel of the WAV file at path. blockSize is the
// number of frames decoded per read.
func OpenChannel(path string, channel, blockSize int) (*ChannelReader, error) {
	if blockSize <= 0 {
		blockSize = 4096
	}

	r := &ChannelReader{path: path, channel: channel, blockSize: blockSize}
	if err := r.open(); err != nil {
		return nil, err
	}
	if channel < 0 || channel >= r.info.Channels {
		r.Close()
		return nil, fmt.Errorf("%s: channel %d out of range [0, %d)", path, channel, r.info.Channels)
	}

	r.buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: r.info.Channels, SampleRate: r.info.SampleRate},
		Data:           make([]int, blockSize*r.info.Channels),
		SourceBitDepth: BitDepth,
	}
	return r, nil
}

func (r *ChannelReader) open() error {
	f, err := os.Open(r.path)
	if err != nil {
		return err
	}

	dec, info, err := openDecoder(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", r.path, err)
	}

	r.f, r.dec, r.info = f, dec, info
	r.blockFrames, r.blockPos, r.read = 0, 0, 0
	return nil
}

// Info returns the layout of the underlying file.
func (r *ChannelReader) Info() Info {
	return r.info
}

// FrameCount returns the number of frames in the file.
func (r *ChannelReader) FrameCount() int64 {
	return r.info.Frames
}

// ReadNext returns the next sample of the channel, or io.EOF.
func (r *ChannelReader) ReadNext() (int32, error) {
	if r.read >= r.info.Frames {
		return 0, io.EOF
	}

	if r.blockPos == r.blockFrames {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}

	v := r.buf.Data[r.blockPos*r.info.Channels+r.channel]
	r.blockPos++
	r.read++
	return int32(v), nil
}

func (r *ChannelReader) fill() error {
	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: read PCM: %w", r.path, err)
	}

	frames := n / r.info.Channels
	if frames == 0 {
		return io.ErrUnexpectedEOF
	}
	r.blockFrames = frames
	r.blockPos = 0
	return nil
}

// Rewind reopens the file and restarts at frame 0.
func (r *ChannelReader) Rewind() error {
	if err := r.Close(); err != nil {
		return err
	}
	return r.open()
}

// Close releases the file handle.
func (r *ChannelReader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f, r.dec = nil, nil
	return err
}
