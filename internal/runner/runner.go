package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/runpadhq/runpad/internal/config"
	"github.com/runpadhq/runpad/internal/consts"
	"github.com/runpadhq/runpad/internal/pkg/utils"
)

// Mode selects how the entry file is executed. Exactly one mode is
// active per run.
type Mode string

const (
	ModeConsole Mode = "console"
	ModeService Mode = "service"
)

// Options is the per-run input from the calling orchestration layer.
// An upstream step guarantees the entry file and its dependencies exist
// before a run is requested.
type Options struct {
	EntryFile   string
	Mode        Mode
	Timeout     time.Duration // 0 means no run timeout
	Input       string        // optional stdin text, console mode
	OpenBrowser bool          // service mode
}

// Runner executes previously-unknown programs and reports a structured
// outcome. The candidate port list and bind-wait window come from
// configuration, not per-run input.
type Runner struct {
	interpreter string
	ports       []int
	portWait    time.Duration

	// echo receives the live mirror of service output.
	echo io.Writer
}

func New(cfg config.RunnerConfig) *Runner {
	return &Runner{
		interpreter: cfg.Interpreter,
		ports:       append([]int(nil), cfg.CandidatePorts...),
		portWait:    time.Duration(cfg.PortWaitSec) * time.Second,
		echo:        os.Stdout,
	}
}

// Run blocks until the program reaches a terminal condition and returns
// the run's single Result. Service mode is designed to be long-running;
// console mode is a one-shot.
func (r *Runner) Run(ctx context.Context, opts Options) *Result {
	ctx = context.WithValue(ctx, consts.CtxKeyRunID, "run-"+utils.RandStr(6))

	switch opts.Mode {
	case ModeService:
		sess, res := r.StartService(ctx, opts)
		if res != nil {
			return res
		}
		return r.Supervise(ctx, sess, opts.Timeout)
	default:
		return r.runConsole(ctx, opts)
	}
}

func (r *Runner) command(entry string) *exec.Cmd {
	cmd := exec.Command(r.interpreter, entry)
	cmd.Dir = filepath.Dir(entry)
	return cmd
}

func recoverToResult(c *child, out **Result) {
	if rec := recover(); rec != nil {
		if c != nil {
			c.Kill()
		}
		*out = failure(KindRunException, fmt.Sprintf("execution exception: %v", rec))
	}
}
