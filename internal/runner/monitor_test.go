package runner

import (
	"bytes"
	"strings"
	"testing"
)

func TestWatchOutputAppendsAndEchoes(t *testing.T) {
	buf := NewOutputBuffer()
	var echo bytes.Buffer

	watchOutput(strings.NewReader("first\r\nsecond\nthird"), buf, &echo)

	lines, _ := buf.Since(0)
	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("unexpected line count: %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
	if echo.String() != "first\nsecond\nthird\n" {
		t.Fatalf("unexpected echo: %q", echo.String())
	}
}

func TestWatchOutputNilEcho(t *testing.T) {
	buf := NewOutputBuffer()
	watchOutput(strings.NewReader("only\n"), buf, nil)
	if buf.Len() != 1 {
		t.Fatalf("expected one captured line, got %d", buf.Len())
	}
}
