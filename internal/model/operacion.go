package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados finos reconocidos. Estado is free text — the CRM can push values
// outside this list — but these are the ones the backend itself writes or
// the dashboard mapping names explicitly.
const (
	EstadoPropuesta = "Propuesta"
	EstadoAprobada  = "Aprobada"
	EstadoLiquidada = "Liquidada"
	EstadoRechazada = "Rechazada"
	EstadoEnGestion = "EN GESTION"
)

// Buckets del dashboard.
const (
	DashboardIngresada = "INGRESADA"
	DashboardAprobada  = "APROBADA"
	DashboardLiquidada = "LIQUIDADA"
)

// estadoDashboard is the literal fine-grained → bucket table. Anything not
// listed falls to APROBADA. Rejected states bucket under INGRESADA.
var estadoDashboard = map[string]string{
	"LIQUIDADO":      DashboardLiquidada,
	"Liquidada":      DashboardLiquidada,
	"RECHAZADO":      DashboardIngresada,
	"Rechazada":      DashboardIngresada,
	"ENVIADA MP":     DashboardIngresada,
	"Ingresada":      DashboardIngresada,
	"APROBADO DEF":   DashboardAprobada,
	"APROBADO PROV.": DashboardAprobada,
	"EN PROC. LIQ.":  DashboardAprobada,
	"Aprobada":       DashboardAprobada,
	"CONFEC. PRENDA": DashboardAprobada,
	"En gestión":     DashboardAprobada,
	"Propuesta":      DashboardAprobada,
}

// DashboardPorEstado projects a fine-grained estado onto its coarse bucket.
// Pure function: the bucket is never stored independently of a recompute.
func DashboardPorEstado(estado string) string {
	if bucket, ok := estadoDashboard[estado]; ok {
		return bucket
	}
	return DashboardAprobada
}

// Operacion is one financed-purchase loan application and its approval and
// liquidation history. Fields under "snapshot de aprobación" are overwritten
// by Aprobar and partially by the Kommo webhook.
type Operacion struct {
	ID uint `gorm:"primaryKey"`

	// Inmutables desde la creación.
	Monto            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Meses            int             `gorm:"not null"`
	Tasa             decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	ClienteID        uint            `gorm:"index;not null"`
	PlanID           uint            `gorm:"index;not null"`
	VendedorID       *uint           `gorm:"index"`
	SubcanalID       *uint           `gorm:"index"`
	CanalID          *uint           `gorm:"index"`
	UsuarioCreadorID uint            `gorm:"not null"`

	Estado          string `gorm:"not null;default:'Propuesta'"`
	EstadoDashboard string `gorm:"not null;default:'INGRESADA'"`

	// Snapshot de aprobación.
	MontoAprobado         *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MontoAprobadoBanco    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MesesAprobados        *int
	TasaAprobada          *decimal.Decimal `gorm:"type:decimal(8,2)"`
	PlanAprobadoID        *uint
	PlanAprobadoNombre    *string
	CuotaInicialAprobada  *decimal.Decimal `gorm:"type:decimal(18,2)"`
	CuotaPromedioAprobada *decimal.Decimal `gorm:"type:decimal(18,2)"`
	AutoAprobado          *string
	BancoAprobado         *string
	UrlAprobadoDef        *string
	Observaciones         *string
	FechaAprobacion       *time.Time

	// KommoLeadID is set once the operation was pushed to the CRM.
	KommoLeadID *int64 `gorm:"index"`

	// Snapshot de liquidación. Invariante: Liquidada == (FechaLiquidacion != nil).
	Liquidada        bool `gorm:"not null;default:false"`
	FechaLiquidacion *time.Time
	FechaProcLiq     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente  *Cliente  `gorm:"foreignKey:ClienteID"`
	Plan     *Plan     `gorm:"foreignKey:PlanID"`
	Vendedor *Usuario  `gorm:"foreignKey:VendedorID"`
	Subcanal *Subcanal `gorm:"foreignKey:SubcanalID"`
	Canal    *Canal    `gorm:"foreignKey:CanalID"`
}

// RecomputarDashboard refreshes the coarse bucket from Estado. Call after
// every Estado mutation.
func (o *Operacion) RecomputarDashboard() {
	o.EstadoDashboard = DashboardPorEstado(o.Estado)
}

func (Operacion) TableName() string { return "operaciones" }
