package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/runpadhq/runpad/internal/deps"
)

var depsHwd = &DepsRunner{}

type DepsRunner struct{}

func (d *DepsRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:      "deps",
		Usage:     "Check a requirements.txt against the installed environment",
		ArgsUsage: "<requirements.txt>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "install",
				Usage: "install the requirements that are missing or out of range",
			},
		},
		Action: d.run,
	}
}

func (d *DepsRunner) run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("requirements file is required")
	}

	ctx, cfg, err := setupEnv(ctx)
	if err != nil {
		return err
	}

	mgr := deps.NewManager(cfg.Runner.Interpreter)
	if cmd.Bool("install") {
		if err := mgr.EnsureFile(ctx, path); err != nil {
			return err
		}
		color.Green("environment satisfies %s", path)
		return nil
	}

	reqs, err := deps.LoadRequirements(path)
	if err != nil {
		return err
	}
	missing, err := mgr.Missing(ctx, reqs)
	if err != nil {
		return err
	}

	if len(missing) == 0 {
		color.Green("all %d requirement(s) satisfied", len(reqs))
		return nil
	}
	color.Yellow("%d of %d requirement(s) missing:", len(missing), len(reqs))
	for _, req := range missing {
		fmt.Println("  " + req.Spec)
	}
	return fmt.Errorf("%d requirement(s) unsatisfied", len(missing))
}
