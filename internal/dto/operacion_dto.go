package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOperacionRequest struct {
	Monto      decimal.Decimal `json:"monto"      validate:"required,gt=0"`
	Meses      int             `json:"meses"      validate:"required,min=1"`
	Tasa       decimal.Decimal `json:"tasa"       validate:"required"`
	ClienteID  uint            `json:"cliente_id" validate:"required"`
	PlanID     uint            `json:"plan_id"    validate:"required"`
	VendedorID *uint           `json:"vendedor_id"`
	SubcanalID *uint           `json:"subcanal_id"`
	CanalID    *uint           `json:"canal_id"`
}

// AprobarOperacionRequest overwrites the approval snapshot unconditionally.
type AprobarOperacionRequest struct {
	MontoAprobado         decimal.Decimal  `json:"monto_aprobado"       validate:"required,gt=0"`
	MontoAprobadoBanco    *decimal.Decimal `json:"monto_aprobado_banco"`
	MesesAprobados        int              `json:"meses_aprobados"      validate:"required,min=1"`
	TasaAprobada          decimal.Decimal  `json:"tasa_aprobada"        validate:"required"`
	PlanAprobadoID        *uint            `json:"plan_aprobado_id"`
	PlanAprobadoNombre    *string          `json:"plan_aprobado_nombre"`
	CuotaInicialAprobada  *decimal.Decimal `json:"cuota_inicial_aprobada"`
	CuotaPromedioAprobada *decimal.Decimal `json:"cuota_promedio_aprobada"`
	AutoAprobado          *string          `json:"auto_aprobado"`
	BancoAprobado         *string          `json:"banco_aprobado"`
	Observaciones         *string          `json:"observaciones"`
}

type LiquidarOperacionRequest struct {
	// FechaLiquidacion: RFC 3339; empty = now.
	FechaLiquidacion *string `json:"fecha_liquidacion"`
}

// ActualizarFechaRequest sets or clears a lifecycle date for data correction.
// A nil Fecha clears it; clearing fecha_liquidacion also clears Liquidada.
type ActualizarFechaRequest struct {
	Fecha *string `json:"fecha"`
}

type OperacionFilter struct {
	Estado    string `form:"estado"`
	Dashboard string `form:"dashboard"  validate:"omitempty,oneof=INGRESADA APROBADA LIQUIDADA"`
	CanalID   uint   `form:"canal_id"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OperacionResponse struct {
	ID               uint            `json:"id"`
	Monto            decimal.Decimal `json:"monto"`
	Meses            int             `json:"meses"`
	Tasa             decimal.Decimal `json:"tasa"`
	ClienteID        uint            `json:"cliente_id"`
	ClienteNombre    string          `json:"cliente_nombre,omitempty"`
	PlanID           uint            `json:"plan_id"`
	PlanNombre       string          `json:"plan_nombre,omitempty"`
	VendedorID       *uint           `json:"vendedor_id"`
	SubcanalID       *uint           `json:"subcanal_id"`
	CanalID          *uint           `json:"canal_id"`
	Estado           string          `json:"estado"`
	EstadoDashboard  string          `json:"estado_dashboard"`
	FechaCreacion    string          `json:"fecha_creacion"`

	MontoAprobado         *decimal.Decimal `json:"monto_aprobado"`
	MontoAprobadoBanco    *decimal.Decimal `json:"monto_aprobado_banco"`
	MesesAprobados        *int             `json:"meses_aprobados"`
	TasaAprobada          *decimal.Decimal `json:"tasa_aprobada"`
	PlanAprobadoID        *uint            `json:"plan_aprobado_id"`
	PlanAprobadoNombre    *string          `json:"plan_aprobado_nombre"`
	CuotaInicialAprobada  *decimal.Decimal `json:"cuota_inicial_aprobada"`
	CuotaPromedioAprobada *decimal.Decimal `json:"cuota_promedio_aprobada"`
	AutoAprobado          *string          `json:"auto_aprobado"`
	BancoAprobado         *string          `json:"banco_aprobado"`
	UrlAprobadoDef        *string          `json:"url_aprobado_def"`
	Observaciones         *string          `json:"observaciones"`
	FechaAprobacion       *string          `json:"fecha_aprobacion"`

	Liquidada        bool    `json:"liquidada"`
	FechaLiquidacion *string `json:"fecha_liquidacion"`
	FechaProcLiq     *string `json:"fecha_proc_liq"`
}

type OperacionListResponse struct {
	Data  []OperacionResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
