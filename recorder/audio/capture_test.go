package audio

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

var testFormat = Format{SampleRate: 44100, Channels: 2}

// TestCaptureStartDeviceError verifies a failed device open is fatal to the
// session.
func TestCaptureStartDeviceError(t *testing.T) {
	dev := &FakeInputDevice{OpenErr: errors.New("no such device")}
	s := NewCaptureSession(dev, NewFrameBuffer(), testFormat)

	if err := s.Start(); err == nil {
		t.Fatal("Start() = nil, want device error")
	}
	if s.State() != CaptureStopped {
		t.Errorf("State() = %d, want CaptureStopped", s.State())
	}
}

// TestCaptureAppendsChunks verifies delivered chunks land in the buffer in
// order.
func TestCaptureAppendsChunks(t *testing.T) {
	dev := &FakeInputDevice{}
	buf := NewFrameBuffer()
	s := NewCaptureSession(dev, buf, testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	c1 := bytes.Repeat([]byte{0x11}, testFormat.ChunkSize())
	c2 := bytes.Repeat([]byte{0x22}, testFormat.ChunkSize())

	for _, c := range [][]byte{c1, c2} {
		out, status := dev.Stream().Deliver(c)
		if status != StatusContinue {
			t.Fatalf("Deliver status = %d, want StatusContinue", status)
		}
		if out != nil {
			t.Fatalf("Deliver out = %d bytes, want nil while recording", len(out))
		}
	}

	snap := buf.Snapshot()
	if len(snap) != 2 || !bytes.Equal(snap[0], c1) || !bytes.Equal(snap[1], c2) {
		t.Errorf("buffer holds %d chunks, want [c1 c2]", len(snap))
	}
}

// TestCapturePausedEmitsSilence verifies that while paused the callback
// synthesizes a zero buffer of the requested length and appends nothing.
func TestCapturePausedEmitsSilence(t *testing.T) {
	dev := &FakeInputDevice{}
	buf := NewFrameBuffer()
	s := NewCaptureSession(dev, buf, testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	s.Pause()
	chunk := bytes.Repeat([]byte{0x7F}, testFormat.ChunkSize())
	out, status := dev.Stream().Deliver(chunk)

	if status != StatusContinue {
		t.Fatalf("status = %d, want StatusContinue", status)
	}
	want := FramesPerBuffer * testFormat.BytesPerFrame()
	if len(out) != want {
		t.Fatalf("silence length = %d, want %d", len(out), want)
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("silence byte %d = %#x, want 0", i, b)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("buffer grew while paused: %d chunks", buf.Len())
	}

	s.Resume()
	if _, _ = dev.Stream().Deliver(chunk); buf.Len() != 1 {
		t.Errorf("buffer after resume = %d chunks, want 1", buf.Len())
	}
}

// TestCaptureStopPrecedesPause verifies the callback's priority order: a
// requested stop wins even when the session is also paused.
func TestCaptureStopPrecedesPause(t *testing.T) {
	dev := &FakeInputDevice{}
	s := NewCaptureSession(dev, NewFrameBuffer(), testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Pause()

	stopErr := make(chan error, 1)
	go func() { stopErr <- s.Stop() }()

	// Give Stop a moment to raise the flag, then fire the in-flight callback.
	time.Sleep(20 * time.Millisecond)
	out, status := dev.Stream().Deliver(make([]byte, testFormat.ChunkSize()))

	if status != StatusComplete {
		t.Errorf("status = %d, want StatusComplete", status)
	}
	if out != nil {
		t.Errorf("out = %d bytes, want nil on completion", len(out))
	}

	if err := <-stopErr; err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if !dev.Stream().Closed() {
		t.Error("input stream not closed after Stop")
	}
	if s.State() != CaptureStopped {
		t.Errorf("State() = %d, want CaptureStopped", s.State())
	}
}

// TestCaptureStopWithoutCallback verifies Stop still closes the stream after
// the bounded grace period when the device never calls back again.
func TestCaptureStopWithoutCallback(t *testing.T) {
	dev := &FakeInputDevice{}
	s := NewCaptureSession(dev, NewFrameBuffer(), testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Stop took %v, want bounded wait", elapsed)
	}
	if !dev.Stream().Closed() {
		t.Error("input stream not closed")
	}
}

// TestCaptureStopTwice verifies a second Stop is a no-op.
func TestCaptureStopTwice(t *testing.T) {
	dev := &FakeInputDevice{}
	s := NewCaptureSession(dev, NewFrameBuffer(), testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	go dev.Stream().Deliver(make([]byte, testFormat.ChunkSize())) // let the grace wait resolve fast
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop() = %v, want nil", err)
	}
}

// TestCaptureStartTwice verifies the one-way lifecycle.
func TestCaptureStartTwice(t *testing.T) {
	dev := &FakeInputDevice{}
	s := NewCaptureSession(dev, NewFrameBuffer(), testFormat)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); !errors.Is(err, ErrCaptureState) {
		t.Errorf("second Start() = %v, want ErrCaptureState", err)
	}
}
