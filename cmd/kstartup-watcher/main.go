package main

import (
	"context"
	"errors"
	"log"
	"os"

	"kstartup-pbanc-watcher/internal/app"
	"kstartup-pbanc-watcher/internal/browser"
	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/notify"
	"kstartup-pbanc-watcher/internal/observability"
	"kstartup-pbanc-watcher/internal/scraper"
	"kstartup-pbanc-watcher/internal/state"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)

	selectors, err := scraper.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		log.Fatalf("Failed to load selectors: %v", err)
	}

	scanner, err := scraper.NewListingScanner(selectors, logger)
	if err != nil {
		log.Fatalf("Failed to build listing scanner: %v", err)
	}

	engines, err := browser.EnginesFromConfig(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to build browser engines: %v", err)
	}

	orchestrator := app.NewOrchestrator(
		cfg,
		logger,
		engines,
		state.NewFileStore(cfg.Listing.StateFile, cfg.Listing.MaxSeen, logger),
		scanner,
		scraper.NewDetailExtractor(cfg.Listing.URL, selectors, logger),
		scraper.NewFilter(cfg.Filter.Markers),
		notify.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger),
	)

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	if err := app.RunScheduled(ctx, cfg, logger, orchestrator); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Watcher stopped")
			return
		}
		// An aborted run still exits cleanly; the failure is already in
		// the logs and the state file was left untouched.
		logger.Error("Watcher aborted", "error", err.Error())
	}
}
