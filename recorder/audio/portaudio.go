package audio

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDevice opens capture streams on the default system input device.
type PortAudioDevice struct{}

// OpenInput initializes PortAudio and opens the default input stream at the
// requested format. Chunks are converted to little-endian bytes before being
// handed to fn.
func (PortAudioDevice) OpenInput(f Format, fn CaptureFunc) (InputStream, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	var completed atomic.Bool
	cb := func(in []int16) {
		if completed.Load() {
			return
		}
		chunk := make([]byte, len(in)*BytesPerSample)
		for i, s := range in {
			binary.LittleEndian.PutUint16(chunk[i*2:], uint16(s))
		}
		if _, status := fn(chunk, len(in)/f.Channels); status == StatusComplete {
			// The device keeps firing until the stream is closed; stop
			// forwarding once the session has signaled completion.
			completed.Store(true)
		}
	}

	stream, err := portaudio.OpenDefaultStream(f.Channels, 0, float64(f.SampleRate), FramesPerBuffer, cb)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("open default input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	return &paInputStream{stream: stream}, nil
}

type paInputStream struct {
	stream *portaudio.Stream
}

func (s *paInputStream) Close() error {
	stopErr := s.stream.Stop()
	closeErr := s.stream.Close()
	termErr := portaudio.Terminate()
	if stopErr != nil {
		return fmt.Errorf("stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close stream: %w", closeErr)
	}
	if termErr != nil {
		return fmt.Errorf("terminate portaudio: %w", termErr)
	}
	return nil
}
