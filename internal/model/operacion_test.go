package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDashboardPorEstado(t *testing.T) {
	casos := []struct {
		estado string
		bucket string
	}{
		{"LIQUIDADO", DashboardLiquidada},
		{"Liquidada", DashboardLiquidada},
		{"RECHAZADO", DashboardIngresada},
		{"Rechazada", DashboardIngresada},
		{"ENVIADA MP", DashboardIngresada},
		{"Ingresada", DashboardIngresada},
		{"APROBADO DEF", DashboardAprobada},
		{"APROBADO PROV.", DashboardAprobada},
		{"EN PROC. LIQ.", DashboardAprobada},
		{"Aprobada", DashboardAprobada},
		{"CONFEC. PRENDA", DashboardAprobada},
		{"En gestión", DashboardAprobada},
		{"Propuesta", DashboardAprobada},
		// Cualquier estado no listado cae en APROBADA.
		{"ESTADO NUEVO DEL CRM", DashboardAprobada},
		{"", DashboardAprobada},
	}
	for _, c := range casos {
		assert.Equal(t, c.bucket, DashboardPorEstado(c.estado), "estado %q", c.estado)
	}
}

func TestRecomputarDashboard(t *testing.T) {
	op := Operacion{Estado: "LIQUIDADO", EstadoDashboard: DashboardIngresada}
	op.RecomputarDashboard()
	assert.Equal(t, DashboardLiquidada, op.EstadoDashboard)
}
