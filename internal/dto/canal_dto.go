package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCanalRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CrearSubcanalRequest struct {
	Nombre       string `json:"nombre"   validate:"required,min=2,max=100"`
	CanalID      uint   `json:"canal_id" validate:"required"`
	AdminCanalID *uint  `json:"admin_canal_id"`
}

type CrearGastoRequest struct {
	Nombre     string          `json:"nombre"     validate:"required,min=2,max=100"`
	Porcentaje decimal.Decimal `json:"porcentaje" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GastoResponse struct {
	ID         uint            `json:"id"`
	Nombre     string          `json:"nombre"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Activo     bool            `json:"activo"`
}

type SubcanalResponse struct {
	ID           uint            `json:"id"`
	Nombre       string          `json:"nombre"`
	CanalID      uint            `json:"canal_id"`
	AdminCanalID *uint           `json:"admin_canal_id"`
	Activo       bool            `json:"activo"`
	Gastos       []GastoResponse `json:"gastos,omitempty"`
}

type CanalResponse struct {
	ID          uint               `json:"id"`
	Nombre      string             `json:"nombre"`
	Descripcion *string            `json:"descripcion"`
	Activo      bool               `json:"activo"`
	Subcanales  []SubcanalResponse `json:"subcanales,omitempty"`
}
