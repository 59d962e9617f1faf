package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// PreviewState tracks the playback session lifecycle.
type PreviewState int

const (
	// PreviewIdle means Play has not been called.
	PreviewIdle PreviewState = iota
	// PreviewPlaying means the output stream is pulling from the source.
	PreviewPlaying
	// PreviewPaused means playback is suspended without losing position.
	PreviewPaused
	// PreviewStopped means playback ended, by exhaustion or by Stop.
	PreviewStopped
)

// ErrPreviewState is returned when Play is called on a used session.
var ErrPreviewState = errors.New("preview session in wrong state")

// monitorInterval is how often the playback monitor polls the stream for
// source exhaustion.
const monitorInterval = 50 * time.Millisecond

// PreviewSession streams a PCM source to an output device. The source is
// either a snapshot of the live frame buffer materialized to a temporary
// container or a stored recording. Each session plays once; a new playback
// is a new instance.
type PreviewSession struct {
	dev OutputDevice

	stop atomic.Bool

	mu      sync.Mutex
	state   PreviewState
	stream  OutputStream
	cleanup func()

	done       chan struct{}
	finishOnce sync.Once
}

// NewPreviewSession prepares a session against the given output device.
func NewPreviewSession(dev OutputDevice) *PreviewSession {
	return &PreviewSession{dev: dev, done: make(chan struct{})}
}

// stopReader ends the stream cooperatively: once the stop flag is set the
// next pull sees EOF, the device drains, and the monitor finishes the
// session. No silence is synthesized on the playback side.
type stopReader struct {
	src  io.Reader
	stop *atomic.Bool
}

func (r *stopReader) Read(p []byte) (int, error) {
	if r.stop.Load() {
		return 0, io.EOF
	}
	return r.src.Read(p)
}

// Play opens an output stream sized to f and starts streaming src. cleanup,
// when non-nil, runs exactly once when the session finishes, however it
// finishes; it reclaims any temporary container backing src. An output
// device failure is recoverable: cleanup runs, the error is returned, and
// the caller stays in whatever state it was in.
func (p *PreviewSession) Play(src io.Reader, f Format, cleanup func()) error {
	p.mu.Lock()
	if p.state != PreviewIdle {
		p.mu.Unlock()
		return fmt.Errorf("%w: play from %d", ErrPreviewState, p.state)
	}

	stream, err := p.dev.OpenOutput(f, &stopReader{src: src, stop: &p.stop})
	if err != nil {
		p.state = PreviewStopped
		p.mu.Unlock()
		if cleanup != nil {
			cleanup()
		}
		p.finishOnce.Do(func() { close(p.done) })
		return fmt.Errorf("open output device: %w", err)
	}

	p.stream = stream
	p.cleanup = cleanup
	p.state = PreviewPlaying
	p.mu.Unlock()

	stream.Play()
	log.Debug("preview started", "rate", f.SampleRate, "channels", f.Channels)

	go p.monitor()
	return nil
}

// monitor watches for the source running dry and finishes the session.
func (p *PreviewSession) monitor() {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		if p.stop.Load() {
			p.finish()
			return
		}
		p.mu.Lock()
		state := p.state
		playing := p.stream.IsPlaying()
		p.mu.Unlock()

		if state == PreviewPaused {
			continue
		}
		if state == PreviewStopped || !playing {
			p.finish()
			return
		}
	}
}

// Pause suspends playback. Pausing when not playing is a no-op.
func (p *PreviewSession) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PreviewPlaying {
		return
	}
	p.stream.Pause()
	p.state = PreviewPaused
}

// Resume continues playback from the paused position. Resuming when not
// paused is a no-op.
func (p *PreviewSession) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PreviewPaused {
		return
	}
	p.stream.Play()
	p.state = PreviewPlaying
}

// Stop ends playback. The stop flag makes the next source pull report EOF;
// the stream is then closed and the temporary container reclaimed.
func (p *PreviewSession) Stop() {
	p.stop.Store(true)
	p.finish()
}

// State returns the current lifecycle state.
func (p *PreviewSession) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done is closed when the session has finished, whether by completion,
// explicit stop, or a failed open.
func (p *PreviewSession) Done() <-chan struct{} {
	return p.done
}

func (p *PreviewSession) finish() {
	p.finishOnce.Do(func() {
		p.mu.Lock()
		if p.stream != nil {
			if err := p.stream.Close(); err != nil {
				log.Debug("closing output stream", "error", err)
			}
		}
		p.state = PreviewStopped
		cleanup := p.cleanup
		p.mu.Unlock()

		if cleanup != nil {
			cleanup()
		}
		close(p.done)
		log.Debug("preview finished")
	})
}
