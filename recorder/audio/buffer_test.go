package audio

import (
	"bytes"
	"sync"
	"testing"
)

// TestFrameBufferOrdering verifies chunks come back in append order with
// nothing missing or duplicated.
func TestFrameBufferOrdering(t *testing.T) {
	buf := NewFrameBuffer()
	chunks := [][]byte{
		{0x01, 0x02},
		{0x03, 0x04},
		{0x05, 0x06},
	}
	for _, c := range chunks {
		buf.Append(c)
	}

	snap := buf.Snapshot()
	if len(snap) != len(chunks) {
		t.Fatalf("Snapshot() returned %d chunks, want %d", len(snap), len(chunks))
	}
	for i, c := range chunks {
		if !bytes.Equal(snap[i], c) {
			t.Errorf("chunk %d = %v, want %v", i, snap[i], c)
		}
	}
	if buf.Bytes() != 6 {
		t.Errorf("Bytes() = %d, want 6", buf.Bytes())
	}
}

// TestFrameBufferAppendCopies verifies the caller's slice can be reused
// after Append.
func TestFrameBufferAppendCopies(t *testing.T) {
	buf := NewFrameBuffer()
	chunk := []byte{0xAA, 0xBB}
	buf.Append(chunk)
	chunk[0] = 0x00

	snap := buf.Snapshot()
	if snap[0][0] != 0xAA {
		t.Errorf("stored chunk mutated through caller's slice: got %#x", snap[0][0])
	}
}

// TestFrameBufferSnapshotIsStable verifies a snapshot does not grow when the
// buffer does.
func TestFrameBufferSnapshotIsStable(t *testing.T) {
	buf := NewFrameBuffer()
	buf.Append([]byte{1})
	snap := buf.Snapshot()
	buf.Append([]byte{2})

	if len(snap) != 1 {
		t.Errorf("snapshot grew after later append: len = %d, want 1", len(snap))
	}
}

// TestFrameBufferClear verifies Clear empties the buffer.
func TestFrameBufferClear(t *testing.T) {
	buf := NewFrameBuffer()
	buf.Append([]byte{1, 2, 3})
	buf.Clear()

	if buf.Len() != 0 || buf.Bytes() != 0 {
		t.Errorf("after Clear: Len = %d, Bytes = %d, want 0, 0", buf.Len(), buf.Bytes())
	}
	if len(buf.Snapshot()) != 0 {
		t.Error("Snapshot() not empty after Clear")
	}
}

// TestFrameBufferConcurrentAppendSnapshot hammers the buffer from a producer
// and a snapshotting reader at once; every snapshot must be a consistent
// prefix of the appended sequence.
func TestFrameBufferConcurrentAppendSnapshot(t *testing.T) {
	buf := NewFrameBuffer()
	const total = 500

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			buf.Append([]byte{byte(i), byte(i >> 8)})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			snap := buf.Snapshot()
			for j, c := range snap {
				if c[0] != byte(j) || c[1] != byte(j>>8) {
					t.Errorf("snapshot chunk %d out of order: %v", j, c)
					return
				}
			}
		}
	}()

	wg.Wait()

	if buf.Len() != total {
		t.Errorf("Len() = %d, want %d", buf.Len(), total)
	}
}
