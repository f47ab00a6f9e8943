package model

import (
	"time"
)

// Canal is a top-level commercialization channel (agencias, concesionarias,
// financieras). Plans attach to canales; vendedores operate under subcanales.
type Canal struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Subcanales []Subcanal `gorm:"foreignKey:CanalID"`
}

// Subcanal subdivides a Canal. AdminCanalID points to the usuario with rol
// admincanal that administers it; nil while unassigned.
type Subcanal struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"not null"`
	CanalID      uint   `gorm:"index;not null"`
	AdminCanalID *uint  `gorm:"index"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Canal  *Canal  `gorm:"foreignKey:CanalID"`
	Gastos []Gasto `gorm:"foreignKey:SubcanalID"`
}

func (Canal) TableName() string    { return "canales" }
func (Subcanal) TableName() string { return "subcanales" }
