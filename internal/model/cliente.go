package model

import (
	"time"
)

type Cliente struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	Apellido  string `gorm:"not null"`
	Dni       string `gorm:"index"`
	Cuil      *string
	Email     *string
	Telefono  *string
	Provincia *string
	CanalID   *uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Canal *Canal `gorm:"foreignKey:CanalID"`
}
