package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalcularCuotaSistemaFrances(t *testing.T) {
	// 1.000.000 al 36% nominal anual (3% mensual) en 12 meses.
	cuota := CalcularCuota(dec("1000000"), dec("36"), 12, decimal.Zero)
	assert.Equal(t, "100462.09", cuota.StringFixed(2))
}

func TestCalcularCuotaTasaCero(t *testing.T) {
	cuota := CalcularCuota(dec("120000"), decimal.Zero, 12, decimal.Zero)
	assert.Equal(t, "10000.00", cuota.StringFixed(2))
}

func TestCalcularCuotaGastoOtorgamientoProrrateado(t *testing.T) {
	// El gasto de otorgamiento se reparte en partes iguales entre las cuotas.
	sinGasto := CalcularCuota(dec("1000000"), dec("36"), 12, decimal.Zero)
	conGasto := CalcularCuota(dec("1000000"), dec("36"), 12, dec("12000"))
	assert.Equal(t, sinGasto.Add(dec("1000")).StringFixed(2), conGasto.StringFixed(2))
}

func TestCalcularCuotaTasaCeroConGasto(t *testing.T) {
	cuota := CalcularCuota(dec("120000"), decimal.Zero, 12, dec("1200"))
	assert.Equal(t, "10100.00", cuota.StringFixed(2))
}

func TestCostoTotal(t *testing.T) {
	total := CostoTotal(dec("100462.09"), 12)
	assert.Equal(t, "1205545.08", total.StringFixed(2))
}
