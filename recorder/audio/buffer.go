package audio

import "sync"

// FrameBuffer accumulates captured chunks for the in-progress recording. It
// is the one piece of state shared between the capture callback and the main
// loop, so every access goes through the mutex and the critical sections stay
// free of I/O.
type FrameBuffer struct {
	mu     sync.Mutex
	chunks [][]byte
	bytes  int
}

// NewFrameBuffer returns an empty buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Append adds a chunk to the end of the buffer. The chunk is copied, so the
// caller may reuse its slice after Append returns.
func (b *FrameBuffer) Append(chunk []byte) {
	c := make([]byte, len(chunk))
	copy(c, chunk)

	b.mu.Lock()
	b.chunks = append(b.chunks, c)
	b.bytes += len(c)
	b.mu.Unlock()
}

// Snapshot returns a copy of the chunk sequence as appended so far. The
// chunks themselves are not copied; they are never mutated after Append.
func (b *FrameBuffer) Snapshot() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([][]byte, len(b.chunks))
	copy(out, b.chunks)
	return out
}

// Len returns the number of chunks appended so far.
func (b *FrameBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chunks)
}

// Bytes returns the total byte count appended so far.
func (b *FrameBuffer) Bytes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bytes
}

// Clear empties the buffer.
func (b *FrameBuffer) Clear() {
	b.mu.Lock()
	b.chunks = nil
	b.bytes = 0
	b.mu.Unlock()
}
