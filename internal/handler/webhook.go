package handler

import (
	"net/http"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WebhookHandler struct{ svc service.WebhookService }

func NewWebhookHandler(svc service.WebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// Kommo godoc
// @Summary Webhook de cambios de lead en Kommo
// @Tags webhooks
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} dto.ResultadoWebhook
// @Router /v1/webhooks/kommo [post]
//
// Always responds 200: Kommo retries non-2xx deliveries and a malformed
// payload retried is still malformed. The body carries the real outcome.
func (h *WebhookHandler) Kommo(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		log.Warn().Err(err).Msg("webhook: form ilegible")
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "payload ilegible"})
		return
	}

	// Kommo flattens the lead into bracketed keys; keep the first value of
	// each key, the CRM never sends repeats.
	payload := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	resultado := h.svc.Procesar(c.Request.Context(), payload)
	c.JSON(http.StatusOK, resultado)
}
