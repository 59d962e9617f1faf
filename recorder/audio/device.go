package audio

import "io"

// Status is returned by a capture callback to steer the stream.
type Status int

const (
	// StatusContinue keeps the stream running.
	StatusContinue Status = iota
	// StatusComplete ends the stream; the device stops invoking the callback.
	StatusComplete
)

// CaptureFunc is invoked by an input device once per captured chunk. in holds
// frames*format.BytesPerFrame() bytes and is only valid for the duration of
// the call. The returned buffer, when non-nil, is what the device should
// account for in place of the captured data (used to synthesize silence while
// paused); it must be exactly the requested length.
type CaptureFunc func(in []byte, frames int) (out []byte, status Status)

// InputDevice opens capture streams. The production implementation is backed
// by PortAudio; tests inject a scripted fake.
type InputDevice interface {
	// OpenInput opens an input stream and begins delivering chunks to fn at
	// the device cadence. The stream keeps calling fn until fn returns
	// StatusComplete or the stream is closed.
	OpenInput(f Format, fn CaptureFunc) (InputStream, error)
}

// InputStream is a handle to a running capture stream.
type InputStream interface {
	// Close stops callback delivery and releases the device.
	Close() error
}

// OutputDevice opens playback streams. The production implementation is
// backed by oto; tests inject a scripted fake.
type OutputDevice interface {
	// OpenOutput opens an output stream that pulls PCM from src until src is
	// exhausted. The stream starts paused; call Play on the returned handle.
	OpenOutput(f Format, src io.Reader) (OutputStream, error)
}

// OutputStream is a handle to a playback stream.
type OutputStream interface {
	// Play starts or resumes pulling from the source.
	Play()
	// Pause stops pulling without losing position.
	Pause()
	// IsPlaying reports whether the stream is actively playing. It turns
	// false once the source is exhausted and the device buffer has drained.
	IsPlaying() bool
	// Close releases the output device.
	Close() error
}
