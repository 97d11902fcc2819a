package runner

import (
	"strings"
	"sync"
)

// OutputBuffer is an append-only ordered sequence of output lines.
// Exactly one writer (the output monitor) appends; the supervisor reads
// through a monotonically increasing cursor it keeps on its side. Lines
// are never mutated or removed once appended.
type OutputBuffer struct {
	mu    sync.Mutex
	lines []string
}

func NewOutputBuffer() *OutputBuffer {
	return &OutputBuffer{}
}

func (b *OutputBuffer) Append(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
}

// Since returns a copy of the lines appended at or after cursor, plus
// the next cursor position. Passing back the returned cursor yields a
// lossless, order-preserving, duplicate-free stream.
func (b *OutputBuffer) Since(cursor int) ([]string, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(b.lines) {
		return nil, len(b.lines)
	}
	out := make([]string, len(b.lines)-cursor)
	copy(out, b.lines[cursor:])
	return out, len(b.lines)
}

func (b *OutputBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// String joins everything captured so far.
func (b *OutputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}
