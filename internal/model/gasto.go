package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gasto is a named percentage-of-principal surcharge scoped to a subcanal,
// applied additively on top of the requested amount at quotation time.
type Gasto struct {
	ID         uint            `gorm:"primaryKey"`
	Nombre     string          `gorm:"not null"`
	Porcentaje decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	SubcanalID uint            `gorm:"index;not null"`
	Activo     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
