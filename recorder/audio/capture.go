package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// CaptureState tracks the one-way lifecycle of a capture session.
type CaptureState int

const (
	// CaptureIdle means Start has not been called.
	CaptureIdle CaptureState = iota
	// CaptureActive means the input stream is open and delivering chunks.
	CaptureActive
	// CaptureStopped means the stream has been stopped; a new session is a
	// new instance.
	CaptureStopped
)

// ErrCaptureState is returned when Start or Stop is called out of order.
var ErrCaptureState = errors.New("capture session in wrong state")

// CaptureSession owns one input stream and feeds a FrameBuffer. Its callback
// runs on the device's execution context and decides in O(1) among three
// behaviors: signal completion when a stop was requested, synthesize silence
// while paused, or append the delivered chunk. Stop takes precedence over
// pause.
type CaptureSession struct {
	dev    InputDevice
	buf    *FrameBuffer
	format Format

	stopRequested atomic.Bool
	paused        atomic.Bool

	mu     sync.Mutex
	state  CaptureState
	stream InputStream

	// closed by the callback when it observes the stop flag
	done     chan struct{}
	doneOnce sync.Once
}

// NewCaptureSession prepares a session writing into buf. Start opens the
// device.
func NewCaptureSession(dev InputDevice, buf *FrameBuffer, f Format) *CaptureSession {
	return &CaptureSession{
		dev:    dev,
		buf:    buf,
		format: f,
		done:   make(chan struct{}),
	}
}

// Start opens the input stream. A device failure here is fatal to the
// session: the recording cannot proceed.
func (s *CaptureSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != CaptureIdle {
		return fmt.Errorf("%w: start from %d", ErrCaptureState, s.state)
	}

	stream, err := s.dev.OpenInput(s.format, s.callback)
	if err != nil {
		s.state = CaptureStopped
		return fmt.Errorf("open input device: %w", err)
	}

	s.stream = stream
	s.state = CaptureActive
	log.Debug("capture started", "rate", s.format.SampleRate, "channels", s.format.Channels)
	return nil
}

// callback is invoked from the device context. Checks run in fixed priority
// order: stop, then pause, then append.
func (s *CaptureSession) callback(in []byte, frames int) ([]byte, Status) {
	if s.stopRequested.Load() {
		s.doneOnce.Do(func() { close(s.done) })
		return nil, StatusComplete
	}
	if s.paused.Load() {
		// Paused audio is never appended; the stream's duration arithmetic
		// continues over synthesized silence.
		return s.format.Silence(frames), StatusContinue
	}
	s.buf.Append(in)
	return nil, StatusContinue
}

// Pause makes subsequent callbacks emit silence instead of appending.
func (s *CaptureSession) Pause() { s.paused.Store(true) }

// Resume restores normal appending.
func (s *CaptureSession) Resume() { s.paused.Store(false) }

// Paused reports whether the session is in the silence-emitting state.
func (s *CaptureSession) Paused() bool { return s.paused.Load() }

// State returns the current lifecycle state.
func (s *CaptureSession) State() CaptureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stop requests completion, waits a bounded grace period for the in-flight
// callback to observe the flag, then closes the stream and releases the
// device. Stopping is cooperative; the grace period avoids closing the
// device mid-callback.
func (s *CaptureSession) Stop() error {
	s.mu.Lock()
	if s.state != CaptureActive {
		s.mu.Unlock()
		return nil
	}
	s.state = CaptureStopped
	stream := s.stream
	s.mu.Unlock()

	s.stopRequested.Store(true)

	select {
	case <-s.done:
	case <-time.After(stopGrace):
		log.Debug("capture stop grace period expired before callback observed flag")
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("close input stream: %w", err)
	}
	log.Debug("capture stopped", "chunks", s.buf.Len())
	return nil
}
