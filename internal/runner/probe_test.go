package runner

import (
	"context"
	"net"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"
)

func freePort(t *testing.T) (int, net.Listener) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ln.Addr().(*net.TCPAddr).Port, ln
}

func sleepChild(t *testing.T, seconds string) *child {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sleep-based test is unix-focused")
	}
	c, err := startChild(exec.Command("sleep", seconds))
	if err != nil {
		t.Fatalf("start sleep: %v", err)
	}
	t.Cleanup(c.Kill)
	return c
}

func TestPortOpen(t *testing.T) {
	port, ln := freePort(t)
	defer ln.Close()

	if !portOpen(probeHost, port, probeDialTimeout) {
		t.Fatal("expected open port to be detected")
	}

	ln.Close()
	if portOpen(probeHost, port, probeDialTimeout) {
		t.Fatal("expected closed port to be reported closed")
	}
}

func TestWaitForBindReturnsFirstCandidateInListOrder(t *testing.T) {
	portA, lnA := freePort(t)
	defer lnA.Close()
	portB, lnB := freePort(t)
	defer lnB.Close()

	// Both ports are already open; the earlier list entry must win.
	r := &Runner{ports: []int{portA, portB}, portWait: 2 * time.Second}
	c := sleepChild(t, "2")

	url, kind, msg := r.waitForBind(context.Background(), c)
	if kind != "" {
		t.Fatalf("unexpected failure: %s %s", kind, msg)
	}
	if !strings.HasSuffix(url, ":"+strconv.Itoa(portA)) {
		t.Fatalf("expected first candidate %d, got %s", portA, url)
	}
	if !strings.HasPrefix(url, "http://127.0.0.1:") {
		t.Fatalf("unexpected url shape: %s", url)
	}
}

func TestWaitForBindNeverBound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-focused")
	}

	port, ln := freePort(t)
	ln.Close()

	c, err := startChild(exec.Command("true"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	<-c.done

	r := &Runner{ports: []int{port}, portWait: 2 * time.Second}
	_, kind, _ := r.waitForBind(context.Background(), c)
	if kind != KindServerNeverBound {
		t.Fatalf("expected never-bound, got %q", kind)
	}
}

func TestWaitForBindStartTimeout(t *testing.T) {
	port, ln := freePort(t)
	ln.Close()

	c := sleepChild(t, "5")
	r := &Runner{ports: []int{port}, portWait: 500 * time.Millisecond}

	start := time.Now()
	_, kind, _ := r.waitForBind(context.Background(), c)
	if kind != KindServerStartTimeout {
		t.Fatalf("expected start-timeout, got %q", kind)
	}
	if time.Since(start) > 3*time.Second {
		t.Fatalf("probe overran its window: %s", time.Since(start))
	}
}
