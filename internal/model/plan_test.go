package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTasaParaAntiguedad(t *testing.T) {
	tasa := PlanTasa{
		TasaA: decimal.NewFromInt(30),
		TasaB: decimal.NewFromInt(40),
		TasaC: decimal.NewFromInt(50),
	}
	assert.Equal(t, "30", tasa.TasaParaAntiguedad(0).String())
	assert.Equal(t, "30", tasa.TasaParaAntiguedad(10).String())
	assert.Equal(t, "40", tasa.TasaParaAntiguedad(11).String())
	assert.Equal(t, "40", tasa.TasaParaAntiguedad(12).String())
	assert.Equal(t, "50", tasa.TasaParaAntiguedad(13).String())
}

func TestCuotasDeCSV(t *testing.T) {
	assert.Equal(t, []int{12, 24, 48}, CuotasDeCSV("12, 24,48"))
	// Entradas ilegibles se saltean sin error.
	assert.Equal(t, []int{12, 48}, CuotasDeCSV("12,abc,48"))
	assert.Empty(t, CuotasDeCSV(""))
	assert.Empty(t, CuotasDeCSV(" , "))
}

func TestPlazoEnSet(t *testing.T) {
	assert.True(t, PlazoEnSet(18, PlazosPlan))
	assert.False(t, PlazoEnSet(18, PlazosRegla))
	assert.True(t, PlazoEnSet(36, PlazosRegla))
	assert.False(t, PlazoEnSet(15, PlazosPlan))
}

func TestPlanAplicaCuota(t *testing.T) {
	p := Plan{CuotasAplicables: "12,24"}
	assert.True(t, p.AplicaCuota(12))
	assert.False(t, p.AplicaCuota(36))
}

func TestPlanVigenteAl(t *testing.T) {
	inicio := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	p := Plan{FechaInicio: inicio, FechaFin: fin}

	assert.True(t, p.VigenteAl(inicio))
	assert.True(t, p.VigenteAl(fin))
	assert.True(t, p.VigenteAl(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.VigenteAl(inicio.Add(-time.Second)))
	assert.False(t, p.VigenteAl(fin.Add(time.Second)))
}
