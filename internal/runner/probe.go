package runner

import (
	"context"
	"fmt"
	"net"
	"time"
)

const (
	probeHost        = "127.0.0.1"
	probeInterval    = 200 * time.Millisecond
	probeDialTimeout = 200 * time.Millisecond
)

func portOpen(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// waitForBind polls the candidate ports until the service binds one,
// the process exits, or the wait window elapses. Each iteration tries
// the candidates in list order, so ties within one iteration favor the
// earliest entry; the winner is the first candidate found open on that
// pass, not necessarily the first ever tried.
func (r *Runner) waitForBind(ctx context.Context, c *child) (string, ErrorKind, string) {
	deadline := time.Now().Add(r.portWait)

	for {
		if c.Exited() {
			return "", KindServerNeverBound, "server exited before binding a port"
		}

		for _, port := range r.ports {
			if portOpen(probeHost, port, probeDialTimeout) {
				return fmt.Sprintf("http://%s:%d", probeHost, port), "", ""
			}
		}

		if time.Now().After(deadline) {
			return "", KindServerStartTimeout, fmt.Sprintf("server did not bind a port within %s", r.portWait)
		}

		select {
		case <-ctx.Done():
			return "", KindRunException, "run cancelled during startup"
		case <-time.After(probeInterval):
		}
	}
}
