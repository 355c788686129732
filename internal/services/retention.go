package services

import (
	"context"
	"time"

	"github.com/prepnity/prepstudio-backend/internal/config"
	"github.com/prepnity/prepstudio-backend/internal/repository"
	"github.com/prepnity/prepstudio-backend/pkg/logger"
)

// StartAuditRetentionSweeper purges audit rows past the retention window on
// an interval. Retention lives here, outside the mutator, so business logic
// never deletes audit rows. Stops when ctx is cancelled.
func StartAuditRetentionSweeper(ctx context.Context) {
	retention := time.Duration(config.AppConfig.AuditRetentionDays) * 24 * time.Hour
	interval := time.Duration(config.AppConfig.AuditSweepMinutes) * time.Minute

	go func() {
		sweepAuditLog(retention)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepAuditLog(retention)
			}
		}
	}()

	logger.Info().
		Dur("retention", retention).
		Dur("interval", interval).
		Msg("Audit retention sweeper started")
}

func sweepAuditLog(retention time.Duration) {
	cutoff := time.Now().Add(-retention)
	removed, err := repository.PurgeAuditEntriesBefore(cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("Audit retention sweep failed")
		return
	}
	if removed > 0 {
		logger.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Purged expired audit entries")
	}
}
