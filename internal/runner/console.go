package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/gg/gptr"

	"github.com/runpadhq/runpad/internal/pkg/logs"
)

const consoleTick = 100 * time.Millisecond

// runConsole runs the entry file as a one-shot console program and
// polls until it exits, times out, or the run is cancelled. Faults
// while waiting are caught and force-kill the process; nothing escapes
// as a panic.
func (r *Runner) runConsole(ctx context.Context, opts Options) (res *Result) {
	entry, fres := resolveEntry(opts.EntryFile)
	if fres != nil {
		return fres
	}

	c, sink, fres := r.launchConsole(entry, opts.Input)
	if fres != nil {
		return fres
	}
	defer recoverToResult(c, &res)

	logs.CtxInfo(ctx, "running %s as console program", entry)
	started := time.Now()

	for {
		if code, ok := c.ExitCode(); ok {
			out := &Result{
				Success:    code == 0,
				ReturnCode: gptr.Of(code),
				Stderr:     readSink(sink),
				EntryFile:  entry,
			}
			if code != 0 {
				out.Kind = KindRunException
				out.Err = fmt.Sprintf("exited with code %d", code)
			}
			return out
		}

		if opts.Timeout > 0 && time.Since(started) > opts.Timeout {
			c.Kill()
			out := failure(KindTimeout, fmt.Sprintf("timeout after %s, terminated", opts.Timeout))
			out.Stderr = readSink(sink)
			out.EntryFile = entry
			return out
		}

		select {
		case <-ctx.Done():
			c.Kill()
			out := failure(KindRunException, "run cancelled")
			out.Stderr = readSink(sink)
			out.EntryFile = entry
			return out
		case <-time.After(consoleTick):
		}
	}
}
