package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/chronos-tachyon/huffcodec/internal/config"
	"github.com/chronos-tachyon/huffcodec/internal/fileop"
	"github.com/chronos-tachyon/huffcodec/internal/logging"
	"github.com/chronos-tachyon/huffcodec/internal/workspace"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	closer io.Closer
	ws     *workspace.Workspace
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	ws := workspace.New(fileop.NewOS(), logger, workspace.Options{
		Workers: cfg.Encoder.Workers,
		Fill:    cfg.Encoder.Fill,
		Framed:  cfg.Output.Framed,
	})

	logger.Debug().
		Str("config", configPath).
		Int("workers", cfg.Encoder.Workers).
		Bool("fill", cfg.Encoder.Fill).
		Bool("framed", cfg.Output.Framed).
		Msg("loaded configuration")
	return &app{cfg: cfg, logger: logger, closer: closer, ws: ws}, nil
}

// openTable opens the saved table at path, or the configured default table
// when path is empty.
func (a *app) openTable(path string) error {
	if path == "" {
		path = a.cfg.Encoder.DefaultPath
	}
	if path == "" {
		return fmt.Errorf("%w: pass --table or set encoder.default_path", workspace.ErrNoEncoder)
	}
	_, err := a.ws.OpenEncoder(path)
	return err
}

func (a *app) Close() error {
	return a.closer.Close()
}
