// Package audio provides the capture and playback layer for the recorder:
// a lock-guarded frame buffer, a capture session feeding it from an input
// device, and a preview session streaming PCM back out. Real devices are
// backed by PortAudio (input) and oto (output); both sit behind small
// interfaces so the sessions are testable without hardware.
package audio

import "time"

const (
	// BitDepth is the sample resolution. Everything in taper is 16-bit
	// signed little-endian PCM.
	BitDepth = 16

	// BytesPerSample is the byte width of a single sample.
	BytesPerSample = BitDepth / 8

	// FramesPerBuffer is the fixed chunk size requested from the devices.
	FramesPerBuffer = 1024

	// stopGrace is how long Stop waits for an in-flight device callback to
	// observe the stop flag before the stream is closed underneath it.
	stopGrace = 300 * time.Millisecond
)

// Format describes a PCM stream.
type Format struct {
	SampleRate int // frames per second
	Channels   int // 1 = mono, 2 = stereo
}

// BytesPerFrame returns the byte width of one frame across all channels.
func (f Format) BytesPerFrame() int {
	return f.Channels * BytesPerSample
}

// ChunkSize returns the byte length of one device buffer.
func (f Format) ChunkSize() int {
	return FramesPerBuffer * f.BytesPerFrame()
}

// Duration returns the play time of n bytes of PCM in this format.
func (f Format) Duration(n int) time.Duration {
	if f.SampleRate <= 0 || f.BytesPerFrame() <= 0 {
		return 0
	}
	frames := n / f.BytesPerFrame()
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

// Silence returns a zeroed buffer covering frames frames in this format.
func (f Format) Silence(frames int) []byte {
	return make([]byte, frames*f.BytesPerFrame())
}
