package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/gbsav/internal/logger"
	"github.com/urfave/cli/v3"
)

var (
	logLevel   string
	logFormat  string
	debug      bool
	configFile string

	// cfg is loaded by setup before any command runs.
	cfg Config
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, json, text)",
			Value:       "auto",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       configPath(),
			Destination: &configFile,
		},
	}
}

func savFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "sav",
		Aliases:     []string{"s"},
		Usage:       "path to the .sav file",
		Required:    true,
		Destination: dest,
	}
}

func songFlag(dest *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "song",
		Aliases:     []string{"n"},
		Usage:       "song slot (0-31)",
		Required:    true,
		Destination: dest,
	}
}

// setup loads the config file and installs the logger in the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := LoadConfig(configFile)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	cfg = loaded
	applyLoggingConfig(cmd, cfg)
	if debug {
		logLevel = "debug"
	}
	log := logger.Setup(os.Stderr, logFormat, logLevel)
	if cfg.path != "" {
		log.Debug("config loaded", "path", cfg.path)
	}
	return logger.WithContext(ctx, log), nil
}

// stdout is where commands print results.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
