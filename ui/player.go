package ui

import (
	"bytes"
	"fmt"

	"github.com/dgnsrekt/taper/internal/wavio"
	"github.com/dgnsrekt/taper/recorder/audio"
)

// storedPlayer plays one stored recording at a time on the library screens.
type storedPlayer struct {
	session *audio.PreviewSession
	path    string
}

// play decodes the recording at path and starts playback. The returned
// channel closes when playback ends, however it ends.
func (p *storedPlayer) play(out audio.OutputDevice, path string) (<-chan struct{}, error) {
	f, pcm, err := wavio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	session := audio.NewPreviewSession(out)
	if err := session.Play(bytes.NewReader(pcm), f, nil); err != nil {
		return nil, err
	}
	p.session = session
	p.path = path
	return session.Done(), nil
}

// stopIfPlaying stops playback when path is the recording currently playing
// and reports whether it did.
func (p *storedPlayer) stopIfPlaying(path string) bool {
	if p.session == nil || p.path != path {
		return false
	}
	if p.session.State() != audio.PreviewPlaying {
		return false
	}
	p.stop()
	return true
}

// stop ends any active playback.
func (p *storedPlayer) stop() {
	if p.session != nil {
		p.session.Stop()
	}
	p.session = nil
	p.path = ""
}

// reap clears the bookkeeping after playback finished on its own.
func (p *storedPlayer) reap() {
	p.session = nil
	p.path = ""
}
