package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/runpadhq/runpad/internal/runner"
)

var runHwd = &RunRunner{}

type RunRunner struct{}

func (r *RunRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute an entry file as a console program or a network service",
		ArgsUsage: "<entry-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Value: string(runner.ModeConsole),
				Usage: "execution mode: console or service",
			},
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "run timeout in seconds (0 = no limit)",
			},
			&cli.StringFlag{
				Name:  "input",
				Usage: "stdin text fed to a console program",
			},
			&cli.BoolFlag{
				Name:  "open-browser",
				Usage: "open the bound URL once a service is up",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result record as JSON",
			},
		},
		Action: r.run,
	}
}

func (r *RunRunner) run(ctx context.Context, cmd *cli.Command) error {
	entry := cmd.Args().First()
	if entry == "" {
		return fmt.Errorf("entry file is required")
	}

	ctx, cfg, err := setupEnv(ctx)
	if err != nil {
		return err
	}

	mode := runner.Mode(cmd.String("mode"))
	switch mode {
	case runner.ModeConsole, runner.ModeService:
	default:
		return fmt.Errorf("unsupported mode: %s", mode)
	}

	timeoutSec := int(cmd.Int("timeout"))
	if !cmd.IsSet("timeout") {
		timeoutSec = cfg.Runner.DefaultTimeoutSec
	}

	openBrowser := cmd.Bool("open-browser")
	if !cmd.IsSet("open-browser") && mode == runner.ModeService && cfg.Runner.OpenBrowser != nil {
		openBrowser = *cfg.Runner.OpenBrowser
	}

	// Ctrl+C flows through context cancellation: the supervisor tears
	// down the process tree before the run call returns.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res := runner.New(cfg.Runner).Run(ctx, runner.Options{
		EntryFile:   entry,
		Mode:        mode,
		Timeout:     time.Duration(timeoutSec) * time.Second,
		Input:       cmd.String("input"),
		OpenBrowser: openBrowser,
	})

	if cmd.Bool("json") {
		raw, err := sonic.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(raw))
	} else {
		printResult(res)
	}

	if !res.Success {
		return fmt.Errorf("run failed: %s", res.Err)
	}
	return nil
}

func printResult(res *runner.Result) {
	if res.Success {
		color.Green("run succeeded")
		if res.ReturnCode != nil {
			fmt.Printf("return code: %d\n", *res.ReturnCode)
		}
		if res.URL != "" {
			fmt.Printf("served at: %s\n", res.URL)
		}
		return
	}

	color.Red("run failed (%s)", res.Kind)
	if res.Err != "" {
		fmt.Println(res.Err)
	}
	if res.DiagnosticTail != "" {
		color.Yellow("--- diagnostic tail ---")
		fmt.Println(res.DiagnosticTail)
	}
	if res.Stderr != "" {
		color.Yellow("--- stderr ---")
		fmt.Println(res.Stderr)
	}
}
