package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CotizarRequest is shared by the anonymous and authenticated quote endpoints.
// SubcanalID and AntiguedadAuto only take effect on the authenticated path.
type CotizarRequest struct {
	Monto          decimal.Decimal `json:"monto"  validate:"required,gt=0"`
	Cuotas         int             `json:"cuotas" validate:"required,min=1"`
	SubcanalID     *uint           `json:"subcanal_id"`
	AntiguedadAuto *int            `json:"antiguedad_auto" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// GastoCotizado is one itemized subcanal surcharge inside a quote.
type GastoCotizado struct {
	Nombre     string          `json:"nombre"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Monto      decimal.Decimal `json:"monto"`
}

// CotizacionResponse echoes the request and carries the resolved offer
// plus the computed installment. Gastos is only populated on the
// authenticated path.
type CotizacionResponse struct {
	Monto             decimal.Decimal `json:"monto"`
	Cuotas            int             `json:"cuotas"`
	Tasa              decimal.Decimal `json:"tasa"`
	GastoOtorgamiento decimal.Decimal `json:"gasto_otorgamiento"`
	CuotaMensual      decimal.Decimal `json:"cuota_mensual"`
	CostoTotal        decimal.Decimal `json:"costo_total"`
	PlanID            uint            `json:"plan_id"`
	PlanNombre        string          `json:"plan_nombre"`
	Gastos            []GastoCotizado `json:"gastos,omitempty"`
}
