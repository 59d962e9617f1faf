// Package recorder implements the recording session: a capture stream, a
// pause/resume timeline, an optional concurrent preview, and the command
// loop that coordinates them.
package recorder

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/taper/internal/library"
	"github.com/dgnsrekt/taper/internal/wavio"
	"github.com/dgnsrekt/taper/recorder/audio"
)

// tickInterval is the cadence of the session's polling loop.
const tickInterval = 100 * time.Millisecond

// hintDuration is how long a transient message stays on screen.
const hintDuration = 2 * time.Second

// Clock supplies the current time; tests inject a fake.
type Clock func() time.Time

// KeyPoller reports at most one pending keypress per call without blocking.
type KeyPoller interface {
	Poll() (rune, bool)
}

// Prompter collects line input from the user at session exit points. It is
// injected so the command handling stays testable.
type Prompter interface {
	// ConfirmDiscard asks for a typed confirmation before throwing the
	// recording away.
	ConfirmDiscard() bool
	// RecordingName asks for an optional custom filename. Empty means use
	// the default.
	RecordingName(defaultName string) string
}

// Status is the per-tick view the display renders.
type Status struct {
	Mode    Mode
	Elapsed time.Duration
	Hint    string
}

// StatusFunc renders one status frame.
type StatusFunc func(Status)

// OutcomeKind classifies how a session ended.
type OutcomeKind int

const (
	// OutcomeSaved means the buffer was persisted.
	OutcomeSaved OutcomeKind = iota
	// OutcomeDiscarded means the buffer was cleared and nothing written.
	OutcomeDiscarded
	// OutcomeCancelled means the session ended before any audio could be
	// captured, typically a device failure at start.
	OutcomeCancelled
	// OutcomeFailed means persisting failed; the buffer was kept.
	OutcomeFailed
)

// Outcome is the explicit result of a session, consumed by the caller in
// place of any control-flow signaling.
type Outcome struct {
	Kind OutcomeKind
	Path string
	Err  error
}

// Controller owns all session state: the mode flags, the frame buffer, and
// the capture and preview sessions. Start must succeed before commands are
// handled; until then Mode and Elapsed report a freshly started session.
// All methods are driven from the single polling goroutine; the audio
// callbacks touch only the frame buffer and atomic flags inside the
// sessions.
type Controller struct {
	cfg      Config
	format   audio.Format
	inDev    audio.InputDevice
	outDev   audio.OutputDevice
	clock    Clock
	prompter Prompter
	tick     time.Duration

	buf      *audio.FrameBuffer
	capture  *audio.CaptureSession
	timeline *Timeline
	preview  *audio.PreviewSession // nil when no preview exists

	discarded bool
	finished  bool
	outcome   Outcome

	hint      string
	hintUntil time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the time source.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithTick overrides the polling cadence.
func WithTick(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.tick = d }
}

// NewController assembles a session against the given devices. The format
// comes from the active quality preset.
func NewController(cfg Config, in audio.InputDevice, out audio.OutputDevice, prompter Prompter, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		format:   cfg.Quality.Format(),
		inDev:    in,
		outDev:   out,
		clock:    time.Now,
		prompter: prompter,
		tick:     tickInterval,
		buf:      audio.NewFrameBuffer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start opens the capture stream. A device failure here aborts the session;
// the user is returned to the menu.
func (c *Controller) Start() error {
	c.capture = audio.NewCaptureSession(c.inDev, c.buf, c.format)
	if err := c.capture.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	c.timeline = NewTimeline(c.clock())
	log.Debug("session started", "preset", c.cfg.Quality)
	return nil
}

// Mode derives the current session mode from the live flags. Before Start
// succeeds there is no timeline yet and the session reads as recording.
func (c *Controller) Mode() Mode {
	var recPaused bool
	if c.timeline != nil {
		recPaused = c.timeline.Paused()
	}
	var active, paused bool
	if c.preview != nil {
		switch c.preview.State() {
		case audio.PreviewPlaying:
			active = true
		case audio.PreviewPaused:
			active, paused = true, true
		}
	}
	return DeriveMode(recPaused, active, paused)
}

// Elapsed returns the recording duration as of now, or zero before Start.
// While paused (including for the whole life of a preview, which only runs
// over a paused recording) the value stays frozen.
func (c *Controller) Elapsed() time.Duration {
	if c.timeline == nil {
		return 0
	}
	return c.timeline.Elapsed(c.clock())
}

// Buffer exposes the frame buffer for status displays.
func (c *Controller) Buffer() *audio.FrameBuffer {
	return c.buf
}

// Status assembles the current display frame.
func (c *Controller) Status() Status {
	s := Status{Mode: c.Mode(), Elapsed: c.Elapsed()}
	if c.clock().Before(c.hintUntil) {
		s.Hint = c.hint
	}
	return s
}

func (c *Controller) setHint(msg string) {
	c.hint = msg
	c.hintUntil = c.clock().Add(hintDuration)
}

// reapPreview notices a preview that finished on its own (source exhausted)
// and returns the session to the paused-recording mode it started from.
func (c *Controller) reapPreview() {
	if c.preview == nil {
		return
	}
	select {
	case <-c.preview.Done():
		c.preview = nil
	default:
	}
}

// Handle applies one command in the current mode. It reports whether the
// session should exit, and returns ErrInvalidCommand (with a corrective
// hint) for keys that are rejected in this mode. Rejected commands change
// nothing.
func (c *Controller) Handle(cmd Command) (exit bool, err error) {
	if c.finished {
		return true, ErrSessionFinished
	}
	c.reapPreview()
	mode := c.Mode()

	switch cmd {
	case CmdPauseResume:
		if mode.Previewing() {
			return false, fmt.Errorf("%w: stop the preview first (press s)", ErrInvalidCommand)
		}
		if mode == ModeRecordingPaused {
			c.timeline.Resume(c.clock())
			c.capture.Resume()
			c.setHint("recording resumed")
		} else {
			c.capture.Pause()
			c.timeline.Pause(c.clock())
			c.setHint("recording paused")
		}
		return false, nil

	case CmdListen:
		if mode.Previewing() {
			return false, fmt.Errorf("%w: already listening", ErrInvalidCommand)
		}
		if mode == ModeRecording {
			return false, fmt.Errorf("%w: pause the recording first (press p)", ErrInvalidCommand)
		}
		return false, c.startPreview()

	case CmdSave:
		if mode.Previewing() {
			// Stops the preview only; the session continues.
			c.preview.Stop()
			<-c.preview.Done()
			c.preview = nil
			c.setHint("preview stopped")
			return false, nil
		}
		return true, nil

	case CmdDiscard:
		if mode.Previewing() {
			return false, fmt.Errorf("%w: stop the preview first (press s)", ErrInvalidCommand)
		}
		if c.prompter != nil && !c.prompter.ConfirmDiscard() {
			c.setHint("discard cancelled")
			return false, nil
		}
		c.discarded = true
		return true, nil

	case CmdSpace:
		switch mode {
		case ModePreviewPlaying:
			c.preview.Pause()
		case ModePreviewPaused:
			c.preview.Resume()
		}
		return false, nil
	}
	return false, nil
}

// startPreview snapshots the buffer, materializes it to a temporary
// container, and starts an independent playback session over it. Preview is
// only reachable from a paused recording, so the snapshot is stable.
func (c *Controller) startPreview() error {
	snap := c.buf.Snapshot()
	if len(snap) == 0 {
		// Nothing to preview; a silent no-op.
		c.setHint("nothing captured yet")
		return nil
	}

	tmp, err := os.CreateTemp("", "taper-preview-*.wav")
	if err != nil {
		return fmt.Errorf("create preview container: %w", err)
	}
	tmpPath := tmp.Name()
	if err := wavio.Write(tmp, c.format, snap); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("materialize preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("materialize preview: %w", err)
	}

	_, pcm, err := wavio.ReadFile(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("read preview container: %w", err)
	}

	p := audio.NewPreviewSession(c.outDev)
	cleanup := func() { os.Remove(tmpPath) }
	if err := p.Play(bytes.NewReader(pcm), c.format, cleanup); err != nil {
		// Recoverable: the recording stays paused, exactly as before.
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	c.preview = p
	log.Debug("preview playing", "chunks", len(snap))
	return nil
}

// finish performs exactly one exit path. Discard takes precedence over save
// as an explicit priority, not an accident of ordering.
func (c *Controller) finish(askName bool) Outcome {
	if c.finished {
		return c.outcome
	}

	if c.preview != nil {
		c.preview.Stop()
		<-c.preview.Done()
		c.preview = nil
	}

	var out Outcome
	if c.discarded {
		out = c.finishDiscard()
	} else {
		out = c.finishSave(askName)
	}
	c.finished = true
	c.outcome = out
	return out
}

func (c *Controller) finishDiscard() Outcome {
	if err := c.capture.Stop(); err != nil {
		log.Warn("stopping capture on discard", "error", err)
	}
	c.buf.Clear()
	log.Debug("session discarded")
	return Outcome{Kind: OutcomeDiscarded}
}

func (c *Controller) finishSave(askName bool) Outcome {
	if err := c.capture.Stop(); err != nil {
		log.Warn("stopping capture on save", "error", err)
	}
	// Close any open pause interval exactly once before the final elapsed
	// time is read.
	c.timeline.Finalize(c.clock())

	name := "recording_" + c.clock().Format("2006-01-02_15-04-05") + ".wav"
	if askName && c.prompter != nil {
		if custom := library.SanitizeName(c.prompter.RecordingName(name)); custom != "" {
			name = custom
		}
	}

	if err := os.MkdirAll(c.cfg.RecordingsDir, 0o755); err != nil {
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("create recordings directory: %w", err)}
	}
	path := filepath.Join(c.cfg.RecordingsDir, name)

	// An empty buffer still writes a valid, zero-length-audio container.
	if err := wavio.WriteFile(path, c.format, c.buf.Snapshot()); err != nil {
		// The buffer is kept so a retry remains possible.
		return Outcome{Kind: OutcomeFailed, Err: err}
	}

	c.buf.Clear()
	log.Debug("session saved", "path", path)
	return Outcome{Kind: OutcomeSaved, Path: path}
}

// Run drives the session: once per tick it reaps a finished preview, polls
// for a key, applies it, and renders the status. It returns the session's
// outcome. An interrupt is equivalent to save-with-default-name unless a
// discard already completed.
func (c *Controller) Run(poller KeyPoller, interrupt <-chan os.Signal, render StatusFunc) Outcome {
	if c.finished {
		return c.outcome
	}

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			return c.finish(false)
		case <-ticker.C:
			c.reapPreview()
			if r, ok := poller.Poll(); ok {
				exit, err := c.Handle(ParseKey(r))
				if err != nil {
					c.setHint(err.Error())
				}
				if exit {
					return c.finish(true)
				}
			}
			if render != nil {
				render(c.Status())
			}
		}
	}
}
