package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/middleware"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const cotizacionCacheTTL = 5 * time.Minute

type CotizacionesHandler struct {
	svc   service.CotizacionService
	cache *infra.Cache
}

func NewCotizacionesHandler(svc service.CotizacionService, cache *infra.Cache) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc, cache: cache}
}

// CotizarPublico godoc
// @Summary Cotización anónima contra el catálogo de reglas
// @Tags cotizaciones
// @Accept json
// @Produce json
// @Param body body dto.CotizarRequest true "Monto y cantidad de cuotas"
// @Success 200 {object} dto.CotizacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cotizaciones/publica [post]
func (h *CotizacionesHandler) CotizarPublico(c *gin.Context) {
	var req dto.CotizarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Anonymous quotes depend only on (monto, cuotas); cache aggressively.
	key := fmt.Sprintf("cotizacion:publica:%s:%d", req.Monto.String(), req.Cuotas)
	if h.cache != nil {
		var cached dto.CotizacionResponse
		if err := h.cache.GetJSON(c.Request.Context(), key, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	resp, err := h.svc.CotizarPublico(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(c.Request.Context(), key, resp, cotizacionCacheTTL); err != nil {
			log.Warn().Err(err).Msg("cotizaciones: no se pudo cachear la cotización")
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Cotizar resolves an authenticated quote for the acting user's subcanal.
func (h *CotizacionesHandler) Cotizar(c *gin.Context) {
	var req dto.CotizarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	resp, err := h.svc.Cotizar(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
