package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// BitDepth is the only sample width handled.
	BitDepth = 16

	formatPCM        = 1
	formatExtensible = 0xFFFE
)

var (
	// ErrInvalidFile reports input that is not a RIFF/WAVE file.
	ErrInvalidFile = errors.New("invalid WAV file")
	// ErrUnsupportedFormat reports a WAV file that is not 16-bit integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
	// ErrChannelLength reports channels of unequal length passed to Encode.
	ErrChannelLength = errors.New("channels differ in length")
)

// Info describes the PCM layout of a WAV file.
type Info struct {
	SampleRate int
	Channels   int
	Frames     int64
}

func (i Info) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d frames", i.SampleRate, i.Channels, i.Frames)
}

// openDecoder validates the header of r and positions the decoder at the
// start of the PCM data.
func openDecoder(r io.ReadSeeker) (*wav.Decoder, Info, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, Info{}, ErrInvalidFile
	}

	if f := dec.WavAudioFormat; f != formatPCM && f != formatExtensible {
		return nil, Info{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, f)
	}
	if dec.BitDepth != BitDepth {
		return nil, Info{}, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, dec.BitDepth)
	}
	if dec.NumChans == 0 {
		return nil, Info{}, fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, Info{}, fmt.Errorf("seek PCM data: %w", err)
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}
	frameBytes := int64(info.Channels) * BitDepth / 8
	info.Frames = dec.PCMLen() / frameBytes

	return dec, info, nil
}

// ReadInfo reads the header of the WAV file at path.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	_, info, err := openDecoder(f)
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Load decodes the whole file at path into one sample slice per channel.
func Load(path string) (Info, [][]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, err
	}
	defer f.Close()

	dec, info, err := openDecoder(f)
	if err != nil {
		return Info{}, nil, fmt.Errorf("%s: %w", path, err)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Info{}, nil, fmt.Errorf("%s: read PCM: %w", path, err)
	}

	channels := Deinterleave(buf.Data, info.Channels)
	info.Frames = int64(len(channels[0]))
	return info, channels, nil
}

// Deinterleave splits interleaved samples into channels. A trailing
// incomplete frame is dropped.
func Deinterleave(data []int, channels int) [][]int32 {
	frames := len(data) / channels
	out := make([][]int32, channels)
	for c := range out {
		ch := make([]int32, frames)
		for i := range ch {
			ch[i] = int32(data[i*channels+c])
		}
		out[c] = ch
	}
	return out
}

// Encode writes channels as an interleaved 16-bit PCM WAV stream to w,
// blockSize frames at a time.
func Encode(w io.WriteSeeker, sampleRate int, channels [][]int32, blockSize int) error {
	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != frames {
			return ErrChannelLength
		}
	}
	if blockSize <= 0 {
		blockSize = 4096
	}

	numChans := len(channels)
	enc := wav.NewEncoder(w, sampleRate, BitDepth, numChans, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:           make([]int, 0, blockSize*numChans),
		SourceBitDepth: BitDepth,
	}

	// The header is written on the first Write, so an empty file still gets
	// one.
	for start := 0; start == 0 || start < frames; start += blockSize {
		end := min(start+blockSize, frames)
		buf.Data = buf.Data[:0]
		for i := start; i < end; i++ {
			for _, ch := range channels {
				buf.Data = append(buf.Data, int(ch[i]))
			}
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("encode frames %d-%d: %w", start, end, err)
		}
	}

	return enc.Close()
}
