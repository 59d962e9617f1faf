package audio

import (
	"io"
	"sync"
)

// Fake devices for tests. They call back synchronously with scripted chunks
// so the sessions can be exercised without a real audio device.

// FakeInputDevice hands out FakeInputStreams and records the last one.
type FakeInputDevice struct {
	OpenErr error

	mu     sync.Mutex
	stream *FakeInputStream
}

// OpenInput implements InputDevice.
func (d *FakeInputDevice) OpenInput(f Format, fn CaptureFunc) (InputStream, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	s := &FakeInputStream{format: f, fn: fn}
	d.mu.Lock()
	d.stream = s
	d.mu.Unlock()
	return s, nil
}

// Stream returns the most recently opened stream.
func (d *FakeInputDevice) Stream() *FakeInputStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stream
}

// FakeInputStream drives the capture callback on demand instead of at a
// device cadence.
type FakeInputStream struct {
	format Format
	fn     CaptureFunc

	mu     sync.Mutex
	closed bool
}

// Deliver invokes the capture callback with chunk, exactly as the device
// would, and returns what the callback produced.
func (s *FakeInputStream) Deliver(chunk []byte) ([]byte, Status) {
	return s.fn(chunk, len(chunk)/s.format.BytesPerFrame())
}

// Close implements InputStream.
func (s *FakeInputStream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Closed reports whether Close has been called.
func (s *FakeInputStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// FakeOutputDevice hands out FakeOutputStreams and records every open.
type FakeOutputDevice struct {
	OpenErr error

	mu      sync.Mutex
	streams []*FakeOutputStream
}

// OpenOutput implements OutputDevice.
func (d *FakeOutputDevice) OpenOutput(f Format, src io.Reader) (OutputStream, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	s := &FakeOutputStream{format: f, src: src}
	d.mu.Lock()
	d.streams = append(d.streams, s)
	d.mu.Unlock()
	return s, nil
}

// Stream returns the most recently opened stream, or nil.
func (d *FakeOutputDevice) Stream() *FakeOutputStream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.streams) == 0 {
		return nil
	}
	return d.streams[len(d.streams)-1]
}

// Opens returns how many streams have been opened.
func (d *FakeOutputDevice) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

// FakeOutputStream pulls from its source only when the test asks it to.
type FakeOutputStream struct {
	format Format
	src    io.Reader

	mu       sync.Mutex
	playing  bool
	closed   bool
	drained  bool
	consumed []byte
}

// Play implements OutputStream.
func (s *FakeOutputStream) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Pause implements OutputStream.
func (s *FakeOutputStream) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// IsPlaying implements OutputStream; it turns false once the source has been
// drained.
func (s *FakeOutputStream) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing && !s.drained
}

// Close implements OutputStream.
func (s *FakeOutputStream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Closed reports whether Close has been called.
func (s *FakeOutputStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Pull reads up to n bytes from the source, simulating the device draining
// its buffer. At EOF the stream marks itself drained.
func (s *FakeOutputStream) Pull(n int) int {
	buf := make([]byte, n)
	read, err := s.src.Read(buf)
	s.mu.Lock()
	s.consumed = append(s.consumed, buf[:read]...)
	if err == io.EOF {
		s.drained = true
	}
	s.mu.Unlock()
	return read
}

// Drain pulls from the source until EOF.
func (s *FakeOutputStream) Drain() {
	for {
		buf := make([]byte, 4096)
		read, err := s.src.Read(buf)
		s.mu.Lock()
		s.consumed = append(s.consumed, buf[:read]...)
		s.mu.Unlock()
		if err != nil {
			s.mu.Lock()
			s.drained = true
			s.mu.Unlock()
			return
		}
	}
}

// Consumed returns everything pulled from the source so far.
func (s *FakeOutputStream) Consumed() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.consumed))
	copy(out, s.consumed)
	return out
}
