package service

import "errors"

// Typed failures surfaced by the quotation and lifecycle services so handlers
// can distinguish "nothing matched" from "bad input" from "missing reference".
var (
	// ErrNoEncontrado: a referenced cliente/plan/subcanal/operación does not exist.
	ErrNoEncontrado = errors.New("recurso no encontrado")

	// ErrReglaNoAplicable: no anonymous quotation rule satisfies the
	// amount/term/date filters.
	ErrReglaNoAplicable = errors.New("no hay oferta disponible para ese monto y plazo")

	// ErrSinPlanAplicable: no channel plan satisfies the filters.
	ErrSinPlanAplicable = errors.New("no hay plan aplicable para ese monto y plazo")

	// ErrSinSubcanalAsignado: the acting user has no resolvable subcanal.
	ErrSinSubcanalAsignado = errors.New("el usuario no tiene subcanal asignado")

	// ErrConfiguracionInvalida: duplicate rate entry for a term, or a term
	// outside the canonical set.
	ErrConfiguracionInvalida = errors.New("configuración inválida")
)
