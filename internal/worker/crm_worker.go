package worker

// crm_worker.go
// Processes lead sync jobs from QueueCRMSync: pushes a freshly created
// operación to Kommo as a lead and stores the resulting lead id locally.
// Retries with exponential backoff; exhausted jobs land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Field ids of the Kommo lead layout the backend writes on creation. The
// webhook side reads its own set (see the service layer constants).
const (
	kommoCampoOperacionID = 547238
	kommoCampoDNI         = 547260
	kommoCampoPlan        = 547262
	kommoCampoPlazo       = 547264
)

// CRMSyncWorker pushes operations to the Kommo CRM through the circuit
// breaker and records the lead id on success.
type CRMSyncWorker struct {
	kommo    *infra.KommoClient
	cb       *infra.CircuitBreaker
	operRepo repository.OperacionRepository
	rdb      *redis.Client
}

func NewCRMSyncWorker(kommo *infra.KommoClient, cb *infra.CircuitBreaker, operRepo repository.OperacionRepository, rdb *redis.Client) *CRMSyncWorker {
	return &CRMSyncWorker{kommo: kommo, cb: cb, operRepo: operRepo, rdb: rdb}
}

// Process handles a single crm_sync job:
//  1. Parse CRMSyncJobPayload from the job envelope
//  2. Fetch the Operacion (with cliente and plan)
//  3. Skip if already synced (idempotent on redelivery)
//  4. Create the Kommo lead with exponential backoff, behind the CB
//  5. Persist the lead id
func (w *CRMSyncWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload CRMSyncJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("crm_worker: invalid payload")
		return
	}

	op, err := w.operRepo.FindByID(ctx, payload.OperacionID)
	if err != nil {
		log.Error().Err(err).Uint("operacion_id", payload.OperacionID).Msg("crm_worker: operación not found")
		return
	}
	if op.KommoLeadID != nil {
		log.Debug().Uint("operacion_id", op.ID).Int64("lead_id", *op.KommoLeadID).Msg("crm_worker: already synced")
		return
	}

	lead := w.buildLead(op)

	var leadID int64
	syncErr := withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			id, err := w.kommo.CrearLead(ctx, lead)
			if err != nil {
				log.Warn().Err(err).Int("attempt", attempt+1).Uint("operacion_id", op.ID).
					Msg("crm_worker: Kommo attempt failed, retrying")
				return err
			}
			leadID = id
			return nil
		})
	})

	if syncErr != nil {
		log.Error().Err(syncErr).Uint("operacion_id", op.ID).Msg("crm_worker: sync failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueCRMSync, "crm_sync", raw,
			fmt.Sprintf("kommo sync failed: %v", syncErr), 3)
		return
	}

	if err := w.operRepo.MarcarSincronizada(ctx, op.ID, leadID); err != nil {
		log.Error().Err(err).Uint("operacion_id", op.ID).Int64("lead_id", leadID).
			Msg("crm_worker: failed to store lead id")
		return
	}
	log.Info().Uint("operacion_id", op.ID).Int64("lead_id", leadID).Msg("crm_worker: lead created")
}

func (w *CRMSyncWorker) buildLead(op *model.Operacion) infra.KommoLead {
	nombre := fmt.Sprintf("Operación #%d", op.ID)
	if op.Cliente != nil {
		nombre = fmt.Sprintf("Operación #%d — %s, %s", op.ID, op.Cliente.Apellido, op.Cliente.Nombre)
	}

	campos := []infra.KommoLeadCampo{
		{FieldID: kommoCampoOperacionID, Values: []infra.KommoLeadValor{{Value: op.ID}}},
		{FieldID: kommoCampoPlazo, Values: []infra.KommoLeadValor{{Value: op.Meses}}},
	}
	if op.Cliente != nil {
		campos = append(campos, infra.KommoLeadCampo{
			FieldID: kommoCampoDNI, Values: []infra.KommoLeadValor{{Value: op.Cliente.Dni}},
		})
	}
	if op.Plan != nil {
		campos = append(campos, infra.KommoLeadCampo{
			FieldID: kommoCampoPlan, Values: []infra.KommoLeadValor{{Value: op.Plan.Nombre}},
		})
	}

	return infra.KommoLead{
		Name:         nombre,
		Price:        op.Monto.IntPart(),
		CustomFields: campos,
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
