package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlazosRegla is the canonical term set for anonymous quoting. It deliberately
// omits 18 and 30 and must not be unified with PlazosPlan.
var PlazosRegla = []int{12, 24, 36, 48, 60}

// ReglaCotizacion is a standalone financing offer used only for anonymous
// (unauthenticated) quotes. Same shape as Plan but not tied to any canal.
type ReglaCotizacion struct {
	ID                uint            `gorm:"primaryKey"`
	Nombre            string          `gorm:"not null"`
	FechaInicio       time.Time       `gorm:"not null"`
	FechaFin          time.Time       `gorm:"not null"`
	MontoMinimo       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoMaximo       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CuotasAplicables  string          `gorm:"not null"`
	Tasa              decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	GastoOtorgamiento decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Activo            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AplicaCuota reports whether the regla offers the requested term.
func (r *ReglaCotizacion) AplicaCuota(plazo int) bool {
	return PlazoEnSet(plazo, CuotasDeCSV(r.CuotasAplicables))
}

// VigenteAl reports whether ref falls inside the regla's validity window.
func (r *ReglaCotizacion) VigenteAl(ref time.Time) bool {
	return !ref.Before(r.FechaInicio) && !ref.After(r.FechaFin)
}

func (ReglaCotizacion) TableName() string { return "reglas_cotizacion" }
