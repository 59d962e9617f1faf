package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// oto allows exactly one context per process, so the first OpenOutput pins
// the output format for the lifetime of the program. Playback of a stored
// file in a different format than an earlier playback reports a recoverable
// device error rather than resampling.
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoReady  <-chan struct{}
	otoFormat Format
)

const otoReadyTimeout = 5 * time.Second

// OtoDevice opens playback streams on the default system output device.
type OtoDevice struct{}

// OpenOutput returns a stream pulling PCM from src. The stream starts
// paused.
func (OtoDevice) OpenOutput(f Format, src io.Reader) (OutputStream, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			return nil, fmt.Errorf("create audio context: %w", err)
		}
		// Store before waiting: oto permits one NewContext per process, so
		// a slow device must not strand the only context we will ever get.
		otoCtx = ctx
		otoReady = ready
		otoFormat = f
	} else if otoFormat != f {
		return nil, fmt.Errorf("audio output is locked to %d Hz/%d ch for this run, source is %d Hz/%d ch",
			otoFormat.SampleRate, otoFormat.Channels, f.SampleRate, f.Channels)
	}

	if err := awaitReady(otoReady, otoReadyTimeout); err != nil {
		return nil, err
	}
	return &otoStream{player: otoCtx.NewPlayer(src)}, nil
}

// awaitReady blocks until the context signals readiness. The channel stays
// closed once ready, so after the first success this returns immediately
// and a timed-out open can be retried on a later call.
func awaitReady(ready <-chan struct{}, timeout time.Duration) error {
	select {
	case <-ready:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("audio output device not ready after %s", timeout)
	}
}

type otoStream struct {
	player *oto.Player
}

func (s *otoStream) Play()           { s.player.Play() }
func (s *otoStream) Pause()          { s.player.Pause() }
func (s *otoStream) IsPlaying() bool { return s.player.IsPlaying() }
func (s *otoStream) Close() error    { return s.player.Close() }
