package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/crunchworks/create2crunch/internal/crunch"
	"github.com/crunchworks/create2crunch/internal/ctxlog"
	"github.com/crunchworks/create2crunch/internal/output"
)

// Run executes the search until it is interrupted or fails.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink, err := output.NewFileSink(a.outputPath)
	if err != nil {
		return fmt.Errorf("failed to open results sink: %w", err)
	}
	defer sink.Close()

	a.logger.Info("Search parameters resolved.",
		"factory", "0x"+hex.EncodeToString(a.searchCfg.FactoryAddress[:]),
		"caller", "0x"+hex.EncodeToString(a.searchCfg.CallingAddress[:]),
		"init_code_hash", "0x"+hex.EncodeToString(a.searchCfg.InitCodeHash[:]),
		"output", sink.Path(),
	)

	if a.searchCfg.ThresholdMode() {
		// There is no OpenCL backend in this build; a device id only selects
		// the threshold acceptance criterion.
		a.logger.Info("Device selected, running threshold search on CPU workers.",
			"device", a.searchCfg.Device,
			"leading", a.searchCfg.LeadingZeroes,
			"total", a.searchCfg.TotalZeroes,
		)
	} else {
		a.logger.Info("Running reward-table search.")
	}

	searcher := crunch.NewSearcher(a.searchCfg, sink, a.workers)
	a.logger.Info("🚀 Starting concurrent search...")
	if err := searcher.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			a.logger.Info("🏁 Search interrupted.", "found", searcher.Found())
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
