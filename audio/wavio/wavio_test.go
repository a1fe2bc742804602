package wavio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-leveler/internal/testutil"
)

func writeStereo(t *testing.T, frames int) (string, [][]int32) {
	t.Helper()

	channels := [][]int32{
		testutil.SinePCM(440, 8000, 12000, frames),
		testutil.NoisePCM(5, 32767, frames),
	}
	path := filepath.Join(t.TempDir(), "in.wav")
	if err := WriteFile(path, 8000, channels, 100); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path, channels
}

func TestRoundTrip(t *testing.T) {
	path, want := writeStereo(t, 1234)

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo() error = %v", err)
	}
	if info != (Info{SampleRate: 8000, Channels: 2, Frames: 1234}) {
		t.Fatalf("ReadInfo() = %v", info)
	}

	info, got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if info.Frames != 1234 || len(got) != 2 {
		t.Fatalf("Load() info = %v, channels = %d", info, len(got))
	}
	for c := range want {
		testutil.RequireSamplesEqual(t, got[c], want[c])
	}
}

func TestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := WriteFile(path, 44100, [][]int32{{}}, 0); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo() error = %v", err)
	}
	if info.Frames != 0 || info.Channels != 1 {
		t.Fatalf("ReadInfo() = %v, want 0 frames, 1 channel", info)
	}

	r, err := OpenChannel(path, 0, 16)
	if err != nil {
		t.Fatalf("OpenChannel() error = %v", err)
	}
	defer r.Close()
	if _, err := r.ReadNext(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadNext() error = %v, want io.EOF", err)
	}
}

func TestChannelReader(t *testing.T) {
	path, want := writeStereo(t, 1000)

	for c := range want {
		r, err := OpenChannel(path, c, 64)
		if err != nil {
			t.Fatalf("OpenChannel(%d) error = %v", c, err)
		}

		for pass := range 2 {
			if r.FrameCount() != 1000 {
				t.Fatalf("FrameCount() = %d, want 1000", r.FrameCount())
			}

			got := make([]int32, 0, 1000)
			for {
				v, err := r.ReadNext()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					t.Fatalf("channel %d pass %d: ReadNext() error = %v", c, pass, err)
				}
				got = append(got, v)
			}
			testutil.RequireSamplesEqual(t, got, want[c])

			if err := r.Rewind(); err != nil {
				t.Fatalf("Rewind() error = %v", err)
			}
		}

		if err := r.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
}

func TestOpenChannelOutOfRange(t *testing.T) {
	path, _ := writeStereo(t, 10)
	if _, err := OpenChannel(path, 2, 0); err == nil {
		t.Fatal("OpenChannel(2) on stereo file: expected error")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "24bit.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, 48000, 24, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 48000},
		Data:           []int{0, 1, -1, 100000},
		SourceBitDepth: 24,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := ReadInfo(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ReadInfo() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadInfo(path); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("ReadInfo() error = %v, want ErrInvalidFile", err)
	}
	if _, err := OpenChannel(path, 0, 0); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("OpenChannel() error = %v, want ErrInvalidFile", err)
	}
}

func TestEncodeChannelLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	err := WriteFile(path, 8000, [][]int32{{1, 2}, {1}}, 0)
	if !errors.Is(err, ErrChannelLength) {
		t.Fatalf("WriteFile() error = %v, want ErrChannelLength", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("destination exists after failed write: %v", statErr)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 0 {
		t.Fatalf("temporary files left behind: %d", len(entries))
	}
}

func TestDeinterleave(t *testing.T) {
	got := Deinterleave([]int{1, -1, 2, -2, 3}, 2)
	testutil.RequireSamplesEqual(t, got[0], []int32{1, 2})
	testutil.RequireSamplesEqual(t, got[1], []int32{-1, -2})
}
