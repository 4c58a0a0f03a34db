package engine

import "bytes"

// tailBreaks is how many trailing line breaks the tail retains. The engine's
// change-count summary sits on the third-from-last line of its output, so
// three breaks are always enough to recover it.
const tailBreaks = 3

// StreamTail is a bounded trailing buffer over a byte stream. After every
// Write it holds the minimal suffix of all bytes seen so far that contains
// the last three line breaks (or everything, if fewer have occurred). Memory
// stays proportional to the longest line regardless of total stream volume.
//
// StreamTail implements io.Writer so it can sit behind an io.MultiWriter
// next to the relay stream. It has a single writer and is read only after
// the producing process has exited.
type StreamTail struct {
	buf []byte
}

// NewStreamTail creates an empty StreamTail.
func NewStreamTail() *StreamTail {
	return &StreamTail{}
}

// Write appends a chunk and trims the buffer back to the bounded suffix.
func (t *StreamTail) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	t.trim()
	return len(p), nil
}

// trim cuts the buffer down to start at the third-from-last line break.
func (t *StreamTail) trim() {
	pos := len(t.buf)
	for i := 0; i < tailBreaks; i++ {
		idx := bytes.LastIndexByte(t.buf[:pos], '\n')
		if idx < 0 {
			return
		}
		pos = idx
	}
	t.buf = append(t.buf[:0], t.buf[pos:]...)
}

// String returns the current buffer contents.
func (t *StreamTail) String() string {
	return string(t.buf)
}
