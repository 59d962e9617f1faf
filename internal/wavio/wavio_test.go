package wavio

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgnsrekt/taper/recorder/audio"
)

// TestRoundTrip verifies writing chunks and reading them back yields
// byte-identical audio data and matching header fields.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format audio.Format
		chunks [][]byte
	}{
		{
			name:   "stereo 44100",
			format: audio.Format{SampleRate: 44100, Channels: 2},
			chunks: [][]byte{
				bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, 1024),
				bytes.Repeat([]byte{0xF0, 0x0F}, 2048),
				bytes.Repeat([]byte{0x80, 0x7F}, 2048),
			},
		},
		{
			name:   "mono 44100",
			format: audio.Format{SampleRate: 44100, Channels: 1},
			chunks: [][]byte{bytes.Repeat([]byte{0xAA, 0x55}, 512)},
		},
		{
			name:   "stereo 48000",
			format: audio.Format{SampleRate: 48000, Channels: 2},
			chunks: [][]byte{bytes.Repeat([]byte{0x00, 0x01}, 4096)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rt.wav")
			if err := WriteFile(path, tt.format, tt.chunks); err != nil {
				t.Fatalf("WriteFile() = %v", err)
			}

			format, pcm, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() = %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %+v, want %+v", format, tt.format)
			}

			want := bytes.Join(tt.chunks, nil)
			if !bytes.Equal(pcm, want) {
				t.Errorf("pcm body differs: got %d bytes, want %d", len(pcm), len(want))
			}
		})
	}
}

// TestEmptyBody verifies a zero-chunk container writes and reads back
// without error.
func TestEmptyBody(t *testing.T) {
	format := audio.Format{SampleRate: 44100, Channels: 2}
	path := filepath.Join(t.TempDir(), "empty.wav")

	if err := WriteFile(path, format, nil); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	got, pcm, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() = %v", err)
	}
	if got != format {
		t.Errorf("format = %+v, want %+v", got, format)
	}
	if len(pcm) != 0 {
		t.Errorf("pcm body = %d bytes, want 0", len(pcm))
	}
}

// TestDuration verifies the reported play time matches the sample math.
func TestDuration(t *testing.T) {
	format := audio.Format{SampleRate: 44100, Channels: 2}
	// one second of audio: rate * bytes-per-frame bytes
	second := make([]byte, format.SampleRate*format.BytesPerFrame())
	path := filepath.Join(t.TempDir(), "dur.wav")
	if err := WriteFile(path, format, [][]byte{second, second, second}); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	d, err := Duration(path)
	if err != nil {
		t.Fatalf("Duration() = %v", err)
	}
	if diff := d - 3*time.Second; diff < -50*time.Millisecond || diff > 50*time.Millisecond {
		t.Errorf("Duration() = %v, want ~3s", d)
	}
}
