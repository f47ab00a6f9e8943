package model

import (
	"time"
)

// Roles reconocidos por el middleware RequireRol.
const (
	RolAdministrador    = "administrador"
	RolAdminCanal       = "admincanal"
	RolVendedor         = "vendedor"
	RolOficialComercial = "oficialcomercial"
)

// Usuario stores system users with role-based access.
// Rol: "administrador" | "admincanal" | "vendedor" | "oficialcomercial"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Nombre       string `gorm:"not null"`
	Apellido     string
	Email        *string
	Telefono     *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null;default:'vendedor'"`
	// SubcanalID assigns a vendedor to its operating subcanal; nil for roles
	// that are not tied to one.
	SubcanalID *uint `gorm:"index"`

	// Estadísticas de vendedor — caché derivada: se actualiza al atribuirle
	// una operación, nunca se recalcula desde el historial.
	CantidadOperaciones  int `gorm:"not null;default:0"`
	FechaUltimaOperacion *time.Time

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Subcanal *Subcanal `gorm:"foreignKey:SubcanalID"`
}

func (u *Usuario) EsVendedor() bool   { return u.Rol == RolVendedor }
func (u *Usuario) EsAdminCanal() bool { return u.Rol == RolAdminCanal }
