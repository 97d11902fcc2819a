package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// shRunner runs entry files through sh so tests don't depend on any
// particular interpreter being installed.
func shRunner(t *testing.T) *Runner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sh-based test is unix-focused")
	}
	return &Runner{
		interpreter: "sh",
		ports:       []int{5000, 8000, 8080, 3000, 8501},
		portWait:    2 * time.Second,
		echo:        io.Discard,
	}
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.sh")
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunConsoleSuccess(t *testing.T) {
	r := shRunner(t)
	entry := writeScript(t, "echo done\nexit 0\n")

	res := r.Run(context.Background(), Options{
		EntryFile: entry,
		Mode:      ModeConsole,
		Timeout:   5 * time.Second,
	})

	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.ReturnCode == nil || *res.ReturnCode != 0 {
		t.Fatalf("expected return code 0, got %+v", res.ReturnCode)
	}
	if res.Kind != "" || res.Err != "" {
		t.Fatalf("success result should carry no error: %+v", res)
	}
}

func TestRunConsoleNonzeroExit(t *testing.T) {
	r := shRunner(t)
	entry := writeScript(t, "echo oops >&2\nexit 7\n")

	res := r.Run(context.Background(), Options{EntryFile: entry, Mode: ModeConsole})

	if res.Success {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.ReturnCode == nil || *res.ReturnCode != 7 {
		t.Fatalf("expected return code 7, got %+v", res.ReturnCode)
	}
	if !strings.Contains(res.Stderr, "oops") {
		t.Fatalf("stderr sink lost diagnostics: %q", res.Stderr)
	}
}

func TestRunConsoleTimeout(t *testing.T) {
	r := shRunner(t)
	entry := writeScript(t, "echo early >&2\nsleep 10\n")

	start := time.Now()
	res := r.Run(context.Background(), Options{
		EntryFile: entry,
		Mode:      ModeConsole,
		Timeout:   300 * time.Millisecond,
	})

	if res.Success || res.Kind != KindTimeout {
		t.Fatalf("expected timeout failure, got %+v", res)
	}
	if !strings.Contains(res.Stderr, "early") {
		t.Fatalf("expected stderr captured so far, got %q", res.Stderr)
	}
	if time.Since(start) > 3*time.Second {
		t.Fatalf("timeout loop overran: %s", time.Since(start))
	}
}

func TestRunConsoleFileNotFound(t *testing.T) {
	r := shRunner(t)
	missing := filepath.Join(t.TempDir(), "nope.sh")

	res := r.Run(context.Background(), Options{EntryFile: missing, Mode: ModeConsole})

	if res.Success || res.Kind != KindFileNotFound {
		t.Fatalf("expected file-not-found, got %+v", res)
	}
	if !strings.HasPrefix(res.Err, "file not found") {
		t.Fatalf("unexpected error text: %q", res.Err)
	}
}

func TestRunConsoleInputFeed(t *testing.T) {
	r := shRunner(t)
	entry := writeScript(t, "read answer\nif [ \"$answer\" = yes ]; then exit 0; fi\nexit 1\n")

	res := r.Run(context.Background(), Options{
		EntryFile: entry,
		Mode:      ModeConsole,
		Input:     "yes\n",
		Timeout:   5 * time.Second,
	})

	if !res.Success {
		t.Fatalf("stdin feed did not reach the program: %+v", res)
	}
}

func TestRunConsoleCancellation(t *testing.T) {
	r := shRunner(t)
	entry := writeScript(t, "sleep 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	res := r.Run(ctx, Options{EntryFile: entry, Mode: ModeConsole})
	if res.Success || res.Kind != KindRunException {
		t.Fatalf("expected cancelled run failure, got %+v", res)
	}
}
