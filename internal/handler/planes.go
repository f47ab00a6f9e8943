package handler

import (
	"net/http"
	"strconv"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/apierror"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanesHandler struct{ svc service.PlanService }

func NewPlanesHandler(svc service.PlanService) *PlanesHandler {
	return &PlanesHandler{svc: svc}
}

func (h *PlanesHandler) Crear(c *gin.Context) {
	var req dto.CrearPlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlanesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanesHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarPlanes(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarPlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPlan(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanesHandler) Activar(c *gin.Context)    { h.setActivo(c, true) }
func (h *PlanesHandler) Desactivar(c *gin.Context) { h.setActivo(c, false) }

func (h *PlanesHandler) setActivo(c *gin.Context, activo bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.SetPlanActivo(c.Request.Context(), id, activo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarTasa carga las variantes de tasa por plazo de un plan.
func (h *PlanesHandler) AgregarTasa(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CrearPlanTasaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarTasa(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PlanesHandler) VincularCanal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	canalID, err := strconv.ParseUint(c.Param("canalId"), 10, 32)
	if err != nil || canalID == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("canal id invalido"))
		return
	}
	if err := h.svc.VincularCanal(c.Request.Context(), id, uint(canalID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Reglas de cotización ─────────────────────────────────────────────────────

type ReglasHandler struct{ svc service.PlanService }

func NewReglasHandler(svc service.PlanService) *ReglasHandler {
	return &ReglasHandler{svc: svc}
}

func (h *ReglasHandler) Crear(c *gin.Context) {
	var req dto.CrearReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRegla(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReglasHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarReglas(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReglasHandler) Activar(c *gin.Context)    { h.setActivo(c, true) }
func (h *ReglasHandler) Desactivar(c *gin.Context) { h.setActivo(c, false) }

func (h *ReglasHandler) setActivo(c *gin.Context, activo bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.SetReglaActivo(c.Request.Context(), id, activo); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
