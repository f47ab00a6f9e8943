package service

import (
	"strconv"
	"strings"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// Identificadores numéricos de los custom fields del pipeline de Kommo.
// The CRM addresses fields indirectly: a payload key ending in "[id]" holds
// one of these identifiers, and its sibling "[values][0][value]" key holds
// the actual value. Treat as configuration constants.
const (
	CampoOperacionID        = "547238"
	CampoMontoAprobado      = "547240"
	CampoMontoAprobadoBanco = "547258"
	CampoTasaAprobada       = "547242"
	CampoPlanAprobado       = "547244"
	CampoMesesAprobados     = "547246"
	CampoCuotaInicial       = "547248"
	CampoCuotaPromedio      = "547250"
	CampoAutoAprobado       = "547252"
	CampoObservaciones      = "547254"
	CampoUrlAprobadoDef     = "547256"
)

const (
	sufijoCampoID = "[id]"
	sufijoValor   = "[values][0][value]"

	// Fallback position of the operation id when the field-id scan fails.
	claveOperacionFallback = "leads[status][0][custom_fields][0][values][0][value]"

	// Tag names arrive on indexed keys; Kommo caps a lead's visible tags well
	// below this bound.
	maxEtiquetas = 15

	prefijoEtiqueta = "leads[status][0][tags]["
	sufijoEtiqueta  = "][name]"
)

// Etiquetas ignoradas: su presencia nunca mueve el estado.
const (
	etiquetaDemorado  = "Demorado"
	etiquetaDuplicado = "Duplicado"
)

// etiquetaEstado maps a single Kommo tag to the target fine-grained estado.
var etiquetaEstado = map[string]string{
	"Enviar a Banco":               "ENVIADA",
	"Aprobado definitivo":          "APROBADO DEF",
	"Pasa a análisis":              "ANALISIS DE BCO",
	"Aprobado Provisorio":          "EN GESTION",
	"Completar documentación":      "EN GESTION",
	"Firmar documentación":         "FIRMAR DOCUM",
	"Inscripción de prenda propio": "EN PROC.INSC.",
	"Inscripción prenda canal":     "EN PROC.INSC.",
	"Envío a liquidar":             "EN PROC.LIQ.",
	"Rechazado BCRA":               "RECHAZADO",
	"Rechazado Banco":              "RECHAZADO",
	"Buqueado":                     "LIQUIDADA",
	"Liquidado Canal":              "LIQUIDADA",
}

// Estados objetivo con side effects de primera transición.
const (
	estadoAprobadoDef      = "APROBADO DEF"
	estadoLiquidadaWebhook = "LIQUIDADA"
)

// DerivarEstadoDeEtiquetas reduces the tag list to one fine-grained estado.
// Empty list, more than one tag, an ignore tag or an unknown tag all fall
// back to "EN GESTION": the lead is being worked on but nothing conclusive
// can be said.
func DerivarEstadoDeEtiquetas(etiquetas []string) string {
	if len(etiquetas) != 1 {
		return model.EstadoEnGestion
	}
	unica := etiquetas[0]
	if unica == etiquetaDemorado || unica == etiquetaDuplicado {
		return model.EstadoEnGestion
	}
	if estado, ok := etiquetaEstado[unica]; ok {
		return estado
	}
	return model.EstadoEnGestion
}

// extraerEtiquetas collects the present indexed tag names in order.
func extraerEtiquetas(payload map[string]string) []string {
	etiquetas := make([]string, 0, 4)
	for i := 0; i < maxEtiquetas; i++ {
		clave := prefijoEtiqueta + strconv.Itoa(i) + sufijoEtiqueta
		if nombre, ok := payload[clave]; ok && nombre != "" {
			etiquetas = append(etiquetas, nombre)
		}
	}
	return etiquetas
}

// claveValorPara derives the sibling value key of an "[id]" key. The trick
// stays here at the boundary; core logic only sees typed values.
func claveValorPara(claveID string) string {
	return strings.TrimSuffix(claveID, sufijoCampoID) + sufijoValor
}

// parseDecimalFlexible parses CRM-entered amounts defensively: plain parse
// first, then comma-as-decimal, then the es-AR form with '.' as thousands
// separator ("12.500,75" → 12500.75). Nil when nothing works — a malformed
// field is treated as absent, never as an error.
func parseDecimalFlexible(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return &d
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return &d
	}
	norm := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if d, err := decimal.NewFromString(norm); err == nil {
		return &d
	}
	return nil
}

func parseEnteroFlexible(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}
