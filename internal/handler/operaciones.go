package handler

import (
	"net/http"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/apierror"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/middleware"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type OperacionesHandler struct{ svc service.OperacionService }

func NewOperacionesHandler(svc service.OperacionService) *OperacionesHandler {
	return &OperacionesHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de operación en estado Propuesta
// @Tags operaciones
// @Accept json
// @Produce json
// @Param body body dto.CrearOperacionRequest true "Operación"
// @Success 201 {object} dto.OperacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/operaciones [post]
func (h *OperacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearOperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	resp, err := h.svc.Crear(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OperacionesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperacionesHandler) Listar(c *gin.Context) {
	var filter dto.OperacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtros invalidos: "+err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Filtros invalidos"))
		return
	}

	claims := middleware.GetClaims(c)
	resp, err := h.svc.Listar(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aprobar registra el snapshot de aprobación manual.
func (h *OperacionesHandler) Aprobar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AprobarOperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Aprobar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperacionesHandler) Liquidar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.LiquidarOperacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Liquidar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperacionesHandler) ActualizarFechaAprobacion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarFechaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarFechaAprobacion(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OperacionesHandler) ActualizarFechaLiquidacion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarFechaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ActualizarFechaLiquidacion(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
