package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PlazosPlan is the canonical set of terms a Plan may offer.
// ReglaCotizacion uses its own, intentionally smaller set (PlazosRegla).
var PlazosPlan = []int{12, 18, 24, 30, 36, 48, 60}

// Plan is a channel-scoped financing offer: date-bounded, amount-bounded,
// with a fixed list of applicable terms encoded as CSV in CuotasAplicables.
type Plan struct {
	ID          uint            `gorm:"primaryKey"`
	Nombre      string          `gorm:"index;not null"`
	FechaInicio time.Time       `gorm:"not null"`
	FechaFin    time.Time       `gorm:"not null"`
	MontoMinimo decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MontoMaximo decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	// CuotasAplicables is a comma-separated subset of PlazosPlan, e.g. "12,24,48".
	CuotasAplicables  string          `gorm:"not null"`
	Tasa              decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	GastoOtorgamiento decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Banco             string
	Activo            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Canales []PlanCanal `gorm:"foreignKey:PlanID"`
	Tasas   []PlanTasa  `gorm:"foreignKey:PlanID"`
}

// PlanCanal associates a Plan with a Canal. A plan can be globally defined
// and toggled per canal via Activo.
type PlanCanal struct {
	ID        uint `gorm:"primaryKey"`
	PlanID    uint `gorm:"index:idx_plan_canal,unique;not null"`
	CanalID   uint `gorm:"index:idx_plan_canal,unique;not null"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time

	Plan  *Plan  `gorm:"foreignKey:PlanID"`
	Canal *Canal `gorm:"foreignKey:CanalID"`
}

// PlanTasa holds the three rate variants for one (Plan, Plazo), selected by
// vehicle-age bracket. Unique per (PlanID, Plazo); Plazo must belong to PlazosPlan.
type PlanTasa struct {
	ID     uint            `gorm:"primaryKey"`
	PlanID uint            `gorm:"index:idx_plan_plazo,unique;not null"`
	Plazo  int             `gorm:"index:idx_plan_plazo,unique;not null"`
	TasaA  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	TasaB  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	TasaC  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
}

// TasaParaAntiguedad selects the rate tier by vehicle age in years:
// ≤10 → TasaA, 11–12 → TasaB, >12 → TasaC.
func (t *PlanTasa) TasaParaAntiguedad(antiguedad int) decimal.Decimal {
	switch {
	case antiguedad <= 10:
		return t.TasaA
	case antiguedad <= 12:
		return t.TasaB
	default:
		return t.TasaC
	}
}

// PlazoEnSet reports whether plazo belongs to the given canonical set.
func PlazoEnSet(plazo int, set []int) bool {
	for _, p := range set {
		if p == plazo {
			return true
		}
	}
	return false
}

// CuotasDeCSV parses a comma-separated term list ("12, 24,48") into ints,
// silently skipping malformed entries.
func CuotasDeCSV(csv string) []int {
	parts := strings.Split(csv, ",")
	cuotas := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		cuotas = append(cuotas, n)
	}
	return cuotas
}

// AplicaCuota reports whether the plan offers the requested term.
func (p *Plan) AplicaCuota(plazo int) bool {
	return PlazoEnSet(plazo, CuotasDeCSV(p.CuotasAplicables))
}

// VigenteAl reports whether ref falls inside the plan's validity window.
func (p *Plan) VigenteAl(ref time.Time) bool {
	return !ref.Before(p.FechaInicio) && !ref.After(p.FechaFin)
}

// GORM pluralizes "Plan" to "plans"; keep Spanish table names explicit.
func (Plan) TableName() string      { return "planes" }
func (PlanCanal) TableName() string { return "plan_canales" }
func (PlanTasa) TableName() string  { return "plan_tasas" }
