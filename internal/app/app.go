package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/crunchworks/create2crunch/internal/crunch"
	"github.com/crunchworks/create2crunch/internal/ctxlog"
	"github.com/crunchworks/create2crunch/internal/jobfile"
	"github.com/crunchworks/create2crunch/internal/output"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	searchCfg  *crunch.Config
	workers    int
	outputPath string
}

// NewApp is the constructor for the main application. It resolves the job
// file against the positional arguments and returns a fully initialized App
// instance with its own isolated logger.
func NewApp(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	args := appConfig.Args
	workers := appConfig.Workers
	outputPath := appConfig.OutputPath

	// Positional arguments take precedence over the job file wholesale; the
	// job file fills in whatever the command line did not supply.
	if appConfig.JobPath != "" {
		job, err := jobfile.Load(ctx, appConfig.JobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load job file: %w", err)
		}
		if len(args) == 0 {
			args = job.Args()
		} else {
			logger.Warn("Positional arguments given, ignoring job file search parameters.", "job", appConfig.JobPath)
		}
		if workers == 0 && job.Workers != nil {
			workers = *job.Workers
		}
		if outputPath == "" {
			outputPath = job.Output
		}
		logger.Debug("Job file merged into configuration.")
	}

	searchCfg, err := crunch.ParseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("invalid search arguments: %w", err)
	}
	logger.Debug("Search arguments validated.")

	if outputPath == "" {
		outputPath = output.DefaultPath
	}

	return &App{
		outW:       outW,
		logger:     logger,
		config:     appConfig,
		searchCfg:  searchCfg,
		workers:    workers,
		outputPath: outputPath,
	}, nil
}

// SearchConfig returns the resolved search parameters. This is primarily for testing.
func (a *App) SearchConfig() *crunch.Config {
	return a.searchCfg
}
