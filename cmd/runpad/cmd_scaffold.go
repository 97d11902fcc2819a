package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/runpadhq/runpad/internal/consts"
	"github.com/runpadhq/runpad/internal/deps"
	"github.com/runpadhq/runpad/internal/scaffold"
)

var scaffoldHwd = &ScaffoldRunner{}

type ScaffoldRunner struct{}

func (s *ScaffoldRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:      "scaffold",
		Usage:     "Materialize a project manifest on disk",
		ArgsUsage: "<manifest.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "directory to create the project under",
			},
			&cli.BoolFlag{
				Name:  "install",
				Usage: "install the project's requirements.txt after writing files",
			},
		},
		Action: s.run,
	}
}

func (s *ScaffoldRunner) run(ctx context.Context, cmd *cli.Command) error {
	manifestPath := cmd.Args().First()
	if manifestPath == "" {
		return fmt.Errorf("manifest file is required")
	}

	ctx, cfg, err := setupEnv(ctx)
	if err != nil {
		return err
	}

	root := cmd.String("root")
	if root == "" {
		root = consts.DefaultProjectsDir()
	}

	m, err := scaffold.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	layout, err := scaffold.Apply(ctx, root, m)
	if err != nil {
		return err
	}

	color.Green("project written to %s", layout.ProjectDir)
	for _, f := range layout.Files {
		fmt.Println("  " + f)
	}

	if cmd.Bool("install") && layout.RequirementsFile != "" {
		mgr := deps.NewManager(cfg.Runner.Interpreter)
		if err := mgr.EnsureFile(ctx, layout.RequirementsFile); err != nil {
			return err
		}
		color.Green("requirements installed")
	}
	return nil
}
