package handler

import (
	"net/http"
	"strconv"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/apierror"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CanalesHandler struct{ svc service.CanalService }

func NewCanalesHandler(svc service.CanalService) *CanalesHandler {
	return &CanalesHandler{svc: svc}
}

func (h *CanalesHandler) Crear(c *gin.Context) {
	var req dto.CrearCanalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCanal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CanalesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerCanal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CanalesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarCanales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CanalesHandler) Desactivar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarCanal(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CanalesHandler) CrearSubcanal(c *gin.Context) {
	var req dto.CrearSubcanalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSubcanal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CanalesHandler) ListarSubcanales(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarSubcanales(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CanalesHandler) AsignarAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	adminID, err := strconv.ParseUint(c.Param("adminId"), 10, 32)
	if err != nil || adminID == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("admin id invalido"))
		return
	}
	if err := h.svc.AsignarAdmin(c.Request.Context(), id, uint(adminID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CrearGasto da de alta un recargo porcentual sobre el subcanal :id.
func (h *CanalesHandler) CrearGasto(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CrearGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearGasto(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CanalesHandler) EliminarGasto(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarGasto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
