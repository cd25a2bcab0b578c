package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/docindex/internal"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg, err := internal.LoadConfig(configPath, cmd.IsSet("config"))
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if root := cmd.String("root"); root != "" {
		cfg.Root = root
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithCheck(cmd.Bool("check")),
		internal.WithStrict(cmd.Bool("strict")),
		internal.WithWatch(cmd.Bool("watch")),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("docindex: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "docindex",
		Usage:  "Regenerate ADR and RFC index tables between sentinel markers",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (built-in ADR/RFC defaults when absent)",
				DefaultText: "docindex.yaml",
				Value:       "docindex.yaml",
				Sources:     cli.EnvVars("DOCINDEX_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Repository root that document paths are relative to",
				Sources: cli.EnvVars("DOCINDEX_ROOT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("DOCINDEX_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Do not write; fail if any index is out of date",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when two records share a number",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and regenerate indexes when records change",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
