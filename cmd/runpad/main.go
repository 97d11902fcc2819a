package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/runpadhq/runpad/internal/config"
	"github.com/runpadhq/runpad/internal/consts"
	"github.com/runpadhq/runpad/internal/pkg/logs"
)

func main() {
	cmd := &cli.Command{
		Name:  "runpad",
		Usage: "Run generated programs and report what actually happened",
		Commands: []*cli.Command{
			runHwd.cmd(),
			scaffoldHwd.cmd(),
			depsHwd.cmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logs.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

// setupEnv loads the config file, configures the global logger from it,
// and stamps the context with a fresh log ID.
func setupEnv(ctx context.Context) (context.Context, *config.Config, error) {
	cfg, err := config.Load(consts.DefaultConfigPath())
	if err != nil {
		return ctx, nil, err
	}

	if err := logs.Init(logs.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   false,
	}); err != nil {
		return ctx, nil, err
	}

	return logs.SetLogID(ctx, logs.NewLogID()), cfg, nil
}
