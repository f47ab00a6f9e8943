package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWebhookService struct {
	recibido  map[string]string
	resultado *dto.ResultadoWebhook
}

func (s *stubWebhookService) Procesar(_ context.Context, payload map[string]string) *dto.ResultadoWebhook {
	s.recibido = payload
	return s.resultado
}

func newWebhookRouter(svc *stubWebhookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/webhooks/kommo", NewWebhookHandler(svc).Kommo)
	return r
}

func TestWebhookKommoRespondeSiempre200(t *testing.T) {
	svc := &stubWebhookService{resultado: &dto.ResultadoWebhook{
		Error: "operación no encontrada",
	}}
	r := newWebhookRouter(svc)

	form := url.Values{}
	form.Set("leads[status][0][custom_fields][0][id]", "547238")
	form.Set("leads[status][0][custom_fields][0][values][0][value]", "41")

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/kommo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// El fallo viaja en el cuerpo; el status jamás invita a reintentar.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ResultadoWebhook
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "operación no encontrada", resp.Error)
}

func TestWebhookKommoAplanaElFormulario(t *testing.T) {
	svc := &stubWebhookService{resultado: &dto.ResultadoWebhook{Success: true, OperacionID: 41}}
	r := newWebhookRouter(svc)

	form := url.Values{}
	form.Set("leads[status][0][custom_fields][0][id]", "547238")
	form.Set("leads[status][0][custom_fields][0][values][0][value]", "41")
	form.Set("leads[status][0][tags][0][name]", "Enviar a Banco")

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/kommo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.recibido)
	assert.Equal(t, "41", svc.recibido["leads[status][0][custom_fields][0][values][0][value]"])
	assert.Equal(t, "Enviar a Banco", svc.recibido["leads[status][0][tags][0][name]"])
}
