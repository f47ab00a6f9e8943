package worker

// email_worker.go
// Processes email jobs from QueueEmail. When the job references an approved
// operación, the approval summary PDF is generated and attached.

import (
	"context"
	"encoding/json"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// EmailWorker sends operation notifications via SMTP.
type EmailWorker struct {
	mailer         *infra.Mailer
	operRepo       repository.OperacionRepository
	pdfStoragePath string
}

func NewEmailWorker(mailer *infra.Mailer, operRepo repository.OperacionRepository, pdfStoragePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, operRepo: operRepo, pdfStoragePath: pdfStoragePath}
}

// Process sends the notification, attaching the approval summary when the
// referenced operation has an approval snapshot.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	pdfPath := ""
	if payload.OperacionID != 0 {
		op, err := w.operRepo.FindByID(ctx, payload.OperacionID)
		if err == nil && op.FechaAprobacion != nil {
			path, pdfErr := infra.GenerarResumenOperacionPDF(op, w.pdfStoragePath)
			if pdfErr != nil {
				log.Warn().Err(pdfErr).Uint("operacion_id", op.ID).Msg("email_worker: PDF generation failed")
			} else {
				pdfPath = path
			}
		}
	}

	if err := w.mailer.SendNotificacion(payload.ToEmail, payload.Subject, payload.Body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Uint("operacion_id", payload.OperacionID).
		Msg("email_worker: notificación enviada")
}
