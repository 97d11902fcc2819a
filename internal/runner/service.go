package runner

import (
	"context"
	"strings"
	"time"

	"github.com/runpadhq/runpad/internal/consts"
	"github.com/runpadhq/runpad/internal/pkg/logs"
	"github.com/runpadhq/runpad/internal/pkg/utils"
)

const serviceTick = time.Second

// crashMarker is the literal substring that begins an unhandled-fault
// trace in the program's output. Detection is a plain substring match
// against captured text: any line containing it is treated as fatal,
// even log text quoting an exception. That heuristic is deliberate.
const crashMarker = "Traceback (most recent call last)"

// Session is a live service-mode run. It exposes the bound URL and the
// output buffer while the supervisor is still polling, so a caller can
// display progress before the terminal result is known. A Session never
// outlives the run that created it unless the caller keeps polling on
// purpose.
type Session struct {
	ID        string
	URL       string
	Buffer    *OutputBuffer
	StartedAt time.Time

	child  *child
	cursor int
}

// StartService launches the entry file as a network service, starts the
// output monitor, and waits for a candidate port to be bound. On any
// failure the process tree is already terminated when the Result comes
// back; on success the returned Session is RUNNING and must be handed
// to Supervise.
func (r *Runner) StartService(ctx context.Context, opts Options) (*Session, *Result) {
	entry, fres := resolveEntry(opts.EntryFile)
	if fres != nil {
		return nil, fres
	}

	logs.CtxInfo(ctx, "starting web server: %s", entry)

	c, pipe, fres := r.launchService(entry)
	if fres != nil {
		return nil, fres
	}

	buf := NewOutputBuffer()
	go watchOutput(pipe, buf, r.echo)

	url, kind, msg := r.waitForBind(ctx, c)
	if kind != "" {
		c.Kill()
		out := failure(kind, msg)
		out.Stdout = buf.String()
		out.EntryFile = entry
		return nil, out
	}

	id, _ := ctx.Value(consts.CtxKeyRunID).(string)
	if id == "" {
		id = "run-" + utils.RandStr(6)
	}
	sess := &Session{
		ID:        id,
		URL:       url,
		Buffer:    buf,
		StartedAt: time.Now(),
		child:     c,
	}

	logs.CtxInfo(ctx, "server %s running at %s", sess.ID, url)
	if opts.OpenBrowser {
		openBrowserIfNeeded(ctx, url)
	}
	return sess, nil
}

// Supervise owns the session's poll loop, timeout policy, and the
// terminal-result decision. It blocks the caller for the whole run.
// Each tick drains new output, scans it for the crash marker, then
// checks process exit, run timeout, and cancellation, in that order.
func (r *Runner) Supervise(ctx context.Context, sess *Session, timeout time.Duration) (res *Result) {
	defer recoverToResult(sess.child, &res)

	started := time.Now()
	ticker := time.NewTicker(serviceTick)
	defer ticker.Stop()

	for {
		batch, next := sess.Buffer.Since(sess.cursor)
		sess.cursor = next

		if i := findCrashLine(batch); i >= 0 {
			logs.CtxWarn(ctx, "crash trace in %s output: %s", sess.ID, utils.Truncate80(batch[i]))
			sess.child.Kill()
			tail := append([]string(nil), batch[i:]...)
			// pick up whatever was still captured while the tree went down
			rest, cur := sess.Buffer.Since(sess.cursor)
			sess.cursor = cur
			tail = append(tail, rest...)

			out := failure(KindCrashDetected, "crash trace detected in server output")
			out.DiagnosticTail = strings.Join(tail, "\n")
			out.Stdout = sess.Buffer.String()
			out.URL = sess.URL
			return out
		}

		if sess.child.Exited() {
			out := failure(KindUnexpectedExit, "web server stopped unexpectedly")
			out.Stdout = sess.Buffer.String()
			out.URL = sess.URL
			return out
		}

		// Reaching the configured run duration is an intentional stop,
		// not a failure.
		if timeout > 0 && time.Since(started) > timeout {
			logs.CtxInfo(ctx, "server %s ran for %s, stopping", sess.ID, timeout)
			sess.child.Kill()
			return &Result{Success: true, URL: sess.URL, Stdout: sess.Buffer.String()}
		}

		select {
		case <-ctx.Done():
			logs.CtxInfo(ctx, "stop requested, shutting down server %s", sess.ID)
			sess.child.Kill()
			return &Result{Success: true, URL: sess.URL, Stdout: sess.Buffer.String()}
		case <-ticker.C:
		}
	}
}

func findCrashLine(batch []string) int {
	for i, line := range batch {
		if strings.Contains(line, crashMarker) {
			return i
		}
	}
	return -1
}
