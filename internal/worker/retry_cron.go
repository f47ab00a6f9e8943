package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues operations that never
// made it to Kommo (kommo_lead_id IS NULL). Covers jobs lost to crashes or
// Redis flushes. Uses the circuit breaker state to avoid queueing work
// against a downed CRM.

import (
	"context"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10

	// Operations older than this stay unsynced; someone decided they never
	// go to the CRM and the cron stops insisting.
	retryMaxAge = 24 * time.Hour

	// Grace period so the cron never races a just-enqueued job.
	retryMinAge = 2 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	OperRepo   repository.OperacionRepository
	Dispatcher *Dispatcher
	CB         *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every minute,
// queries unsynced operations, and re-enqueues their sync jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't queue work against a downed CRM
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	desde := time.Now().Add(-retryMaxAge)
	operaciones, err := cfg.OperRepo.ListCreadasDesde(ctx, desde, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query unsynced operations")
		return
	}

	corte := time.Now().Add(-retryMinAge)
	encoladas := 0
	for i := range operaciones {
		op := &operaciones[i]
		if op.CreatedAt.After(corte) {
			continue
		}
		if err := cfg.Dispatcher.EnqueueCRMSync(ctx, CRMSyncJobPayload{OperacionID: op.ID}); err != nil {
			log.Warn().Err(err).Uint("operacion_id", op.ID).Msg("retry_cron: failed to re-enqueue")
			continue
		}
		encoladas++
	}

	if encoladas > 0 {
		log.Info().Int("count", encoladas).Msg("retry_cron: re-enqueued unsynced operations")
	}
}
