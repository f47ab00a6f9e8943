package service

import (
	"github.com/shopspring/decimal"
)

var (
	cien = decimal.NewFromInt(100)
	doce = decimal.NewFromInt(12)
)

// CalcularCuota computes the periodic installment with the French (annuity)
// system: cuota = P·r·(1+r)^n / ((1+r)^n − 1), where r is the monthly rate
// derived from the nominal annual rate and P already includes any subcanal
// gastos. A gasto de otorgamiento is spread evenly across the term.
// Zero-rate plans degenerate to a straight division (the closed form divides
// by zero).
func CalcularCuota(principal, tasaAnual decimal.Decimal, meses int, gastoOtorgamiento decimal.Decimal) decimal.Decimal {
	n := decimal.NewFromInt(int64(meses))

	r := tasaAnual.Div(doce).Div(cien)
	var cuota decimal.Decimal
	if r.IsZero() {
		cuota = principal.Div(n)
	} else {
		unoMasR := decimal.NewFromInt(1).Add(r)
		factor := decimal.NewFromInt(1)
		for i := 0; i < meses; i++ {
			factor = factor.Mul(unoMasR)
		}
		cuota = principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	}

	if gastoOtorgamiento.IsPositive() {
		cuota = cuota.Add(gastoOtorgamiento.Div(n))
	}
	return cuota.Round(2)
}

// CostoTotal is the sum of all installments.
func CostoTotal(cuota decimal.Decimal, meses int) decimal.Decimal {
	return cuota.Mul(decimal.NewFromInt(int64(meses))).Round(2)
}
