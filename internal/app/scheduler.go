package app

import (
	"context"
	"time"

	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/observability"
)

// RunScheduled drives the orchestrator according to the scheduler mode:
// one pass for "oneshot", repeated independent passes for "interval".
// In interval mode a failed pass is logged and the next tick runs anyway.
func RunScheduled(ctx context.Context, cfg *config.Config, logger *observability.Logger, o *Orchestrator) error {
	if cfg.Scheduler.Mode == "oneshot" {
		_, err := o.Run(ctx)
		return err
	}

	ticker := time.NewTicker(cfg.GetSchedulerInterval())
	defer ticker.Stop()

	for {
		if _, err := o.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Run failed", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
