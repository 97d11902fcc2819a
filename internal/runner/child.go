package runner

import (
	"errors"
	"os/exec"
	"sync"
)

// child wraps a spawned process with a non-blocking view of its exit
// state. The wrapping Runner owns the handle exclusively; termination
// only ever goes through killTree.
type child struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu       sync.Mutex
	exitCode int
	waitErr  string
}

// startChild starts cmd in its own process group and waits for it in
// the background so exit state can be polled without blocking.
func startChild(cmd *exec.Cmd) (*child, error) {
	setProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	c := &child{cmd: cmd, done: make(chan struct{})}
	go c.wait()
	return c, nil
}

func (c *child) wait() {
	err := c.cmd.Wait()

	c.mu.Lock()
	if err != nil {
		c.waitErr = err.Error()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			c.exitCode = exitErr.ExitCode()
		} else {
			c.exitCode = -1
		}
	} else {
		c.exitCode = 0
	}
	c.mu.Unlock()

	close(c.done)
}

// Exited reports whether the process has terminated.
func (c *child) Exited() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// ExitCode returns the exit code once the process has terminated.
func (c *child) ExitCode() (int, bool) {
	if !c.Exited() {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode, true
}

// Kill terminates the whole process tree. Safe to call after exit.
func (c *child) Kill() {
	killTree(c.cmd)
}
