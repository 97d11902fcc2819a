package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// resolveEntry makes the entry path absolute and verifies it exists.
// Nothing is spawned when the file is missing.
func resolveEntry(entryFile string) (string, *Result) {
	abs, err := filepath.Abs(entryFile)
	if err != nil {
		return "", failure(KindFileNotFound, fmt.Sprintf("file not found %s", entryFile))
	}
	if _, err := os.Stat(abs); err != nil {
		return "", failure(KindFileNotFound, fmt.Sprintf("file not found %s", abs))
	}
	return abs, nil
}

// launchConsole spawns the program with the caller's stdin/stdout
// inherited so interactive programs behave normally. Only stderr is
// redirected, into a scoped temp sink, so diagnostics stay readable
// after exit without interleaving with live console output. When input
// text is supplied, stdin comes from it instead of the terminal.
func (r *Runner) launchConsole(entry, input string) (*child, *os.File, *Result) {
	sink, err := os.CreateTemp("", "runpad-stderr-*")
	if err != nil {
		return nil, nil, failure(KindLaunchFailure, fmt.Sprintf("stderr sink: %v", err))
	}

	cmd := r.command(entry)
	cmd.Stdout = os.Stdout
	cmd.Stderr = sink
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	} else {
		cmd.Stdin = os.Stdin
	}

	c, err := startChild(cmd)
	if err != nil {
		sink.Close()
		os.Remove(sink.Name())
		return nil, nil, failure(KindLaunchFailure, fmt.Sprintf("launch failed: %v", err))
	}
	return c, sink, nil
}

// launchService spawns the program with stdout and stderr merged into a
// single pipe. Nothing is inherited: everything must be captured
// programmatically.
func (r *Runner) launchService(entry string) (*child, io.ReadCloser, *Result) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, failure(KindLaunchFailure, fmt.Sprintf("output pipe: %v", err))
	}

	cmd := r.command(entry)
	cmd.Stdout = pw
	cmd.Stderr = pw

	c, err := startChild(cmd)
	// The parent's write end must be closed either way: the child holds
	// its own copy, and the read end only reports EOF once both are gone.
	pw.Close()
	if err != nil {
		pr.Close()
		return nil, nil, failure(KindLaunchFailure, fmt.Sprintf("launch failed: %v", err))
	}
	return c, pr, nil
}

func readSink(sink *os.File) string {
	if sink == nil {
		return ""
	}
	defer func() {
		name := sink.Name()
		sink.Close()
		os.Remove(name)
	}()

	if _, err := sink.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	raw, err := io.ReadAll(sink)
	if err != nil {
		return ""
	}
	return string(raw)
}
