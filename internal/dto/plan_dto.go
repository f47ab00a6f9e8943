package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPlanRequest struct {
	Nombre            string          `json:"nombre"             validate:"required,min=2"`
	FechaInicio       string          `json:"fecha_inicio"       validate:"required"`
	FechaFin          string          `json:"fecha_fin"          validate:"required"`
	MontoMinimo       decimal.Decimal `json:"monto_minimo"       validate:"required,gt=0"`
	MontoMaximo       decimal.Decimal `json:"monto_maximo"       validate:"required,gt=0"`
	CuotasAplicables  string          `json:"cuotas_aplicables"  validate:"required"`
	Tasa              decimal.Decimal `json:"tasa"               validate:"required"`
	GastoOtorgamiento decimal.Decimal `json:"gasto_otorgamiento"`
	Banco             string          `json:"banco"`
	CanalIDs          []uint          `json:"canal_ids"`
}

type ActualizarPlanRequest struct {
	Nombre            string           `json:"nombre"            validate:"omitempty,min=2"`
	FechaInicio       *string          `json:"fecha_inicio"`
	FechaFin          *string          `json:"fecha_fin"`
	MontoMinimo       *decimal.Decimal `json:"monto_minimo"      validate:"omitempty,gt=0"`
	MontoMaximo       *decimal.Decimal `json:"monto_maximo"      validate:"omitempty,gt=0"`
	CuotasAplicables  *string          `json:"cuotas_aplicables"`
	Tasa              *decimal.Decimal `json:"tasa"`
	GastoOtorgamiento *decimal.Decimal `json:"gasto_otorgamiento"`
	Banco             *string          `json:"banco"`
}

// CrearPlanTasaRequest adds the per-term rate tiers of one plan.
type CrearPlanTasaRequest struct {
	Plazo int             `json:"plazo"  validate:"required"`
	TasaA decimal.Decimal `json:"tasa_a" validate:"required"`
	TasaB decimal.Decimal `json:"tasa_b" validate:"required"`
	TasaC decimal.Decimal `json:"tasa_c" validate:"required"`
}

type CrearReglaRequest struct {
	Nombre            string          `json:"nombre"            validate:"required,min=2"`
	FechaInicio       string          `json:"fecha_inicio"      validate:"required"`
	FechaFin          string          `json:"fecha_fin"         validate:"required"`
	MontoMinimo       decimal.Decimal `json:"monto_minimo"      validate:"required,gt=0"`
	MontoMaximo       decimal.Decimal `json:"monto_maximo"      validate:"required,gt=0"`
	CuotasAplicables  string          `json:"cuotas_aplicables" validate:"required"`
	Tasa              decimal.Decimal `json:"tasa"              validate:"required"`
	GastoOtorgamiento decimal.Decimal `json:"gasto_otorgamiento"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PlanTasaResponse struct {
	ID    uint            `json:"id"`
	Plazo int             `json:"plazo"`
	TasaA decimal.Decimal `json:"tasa_a"`
	TasaB decimal.Decimal `json:"tasa_b"`
	TasaC decimal.Decimal `json:"tasa_c"`
}

type PlanResponse struct {
	ID                uint               `json:"id"`
	Nombre            string             `json:"nombre"`
	FechaInicio       string             `json:"fecha_inicio"`
	FechaFin          string             `json:"fecha_fin"`
	MontoMinimo       decimal.Decimal    `json:"monto_minimo"`
	MontoMaximo       decimal.Decimal    `json:"monto_maximo"`
	CuotasAplicables  string             `json:"cuotas_aplicables"`
	Tasa              decimal.Decimal    `json:"tasa"`
	GastoOtorgamiento decimal.Decimal    `json:"gasto_otorgamiento"`
	Banco             string             `json:"banco"`
	Activo            bool               `json:"activo"`
	Tasas             []PlanTasaResponse `json:"tasas,omitempty"`
}

type ReglaResponse struct {
	ID                uint            `json:"id"`
	Nombre            string          `json:"nombre"`
	FechaInicio       string          `json:"fecha_inicio"`
	FechaFin          string          `json:"fecha_fin"`
	MontoMinimo       decimal.Decimal `json:"monto_minimo"`
	MontoMaximo       decimal.Decimal `json:"monto_maximo"`
	CuotasAplicables  string          `json:"cuotas_aplicables"`
	Tasa              decimal.Decimal `json:"tasa"`
	GastoOtorgamiento decimal.Decimal `json:"gasto_otorgamiento"`
	Activo            bool            `json:"activo"`
}
