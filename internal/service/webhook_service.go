package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WebhookService reconcilia el estado local de una operación con lo que
// Kommo informa en cada webhook de cambio de lead.
type WebhookService interface {
	Procesar(ctx context.Context, payload map[string]string) *dto.ResultadoWebhook
}

type webhookService struct {
	operaciones repository.OperacionRepository
	logger      zerolog.Logger
}

func NewWebhookService(operaciones repository.OperacionRepository, logger zerolog.Logger) WebhookService {
	return &webhookService{operaciones: operaciones, logger: logger}
}

// cambiosKommo is the typed intermediate between the raw form payload and
// the operation. Nil means the field did not arrive or did not parse.
type cambiosKommo struct {
	MontoAprobado      *decimal.Decimal
	MontoAprobadoBanco *decimal.Decimal
	TasaAprobada       *decimal.Decimal
	CuotaInicial       *decimal.Decimal
	CuotaPromedio      *decimal.Decimal
	MesesAprobados     *int
	PlanAprobado       *string
	AutoAprobado       *string
	Observaciones      *string
	UrlAprobadoDef     *string
	Etiquetas          []string
}

// Procesar nunca devuelve error ni entra en pánico: todo resultado, bueno o
// malo, se describe en el ResultadoWebhook. El CRM reintenta ante respuestas
// no exitosas y un payload malformado reintentado seguirá malformado.
func (s *webhookService) Procesar(ctx context.Context, payload map[string]string) (resultado *dto.ResultadoWebhook) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("pánico procesando webhook de Kommo")
			resultado = &dto.ResultadoWebhook{Error: "error interno procesando el webhook"}
		}
	}()

	opID, ok := s.buscarOperacionID(payload)
	if !ok {
		s.logger.Warn().Int("claves", len(payload)).Msg("webhook sin id de operación reconocible")
		return &dto.ResultadoWebhook{Error: "el payload no contiene un id de operación"}
	}

	op, err := s.operaciones.FindByID(ctx, opID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Uint("operacion_id", opID).Msg("webhook para operación inexistente")
			return &dto.ResultadoWebhook{OperacionID: opID, Error: "operación no encontrada"}
		}
		s.logger.Error().Err(err).Uint("operacion_id", opID).Msg("error buscando operación del webhook")
		return &dto.ResultadoWebhook{OperacionID: opID, Error: "error consultando la operación"}
	}

	cambios := s.extraerCambios(payload)
	aplicados := s.aplicar(op, cambios)

	if err := s.operaciones.Update(ctx, op); err != nil {
		s.logger.Error().Err(err).Uint("operacion_id", opID).Msg("error guardando cambios del webhook")
		return &dto.ResultadoWebhook{OperacionID: opID, Estado: op.Estado, Etiquetas: cambios.Etiquetas, Error: "error guardando la operación"}
	}

	s.logger.Info().
		Uint("operacion_id", opID).
		Str("estado", op.Estado).
		Strs("etiquetas", cambios.Etiquetas).
		Int("cambios", len(aplicados)).
		Msg("webhook de Kommo aplicado")

	return &dto.ResultadoWebhook{
		Success:     true,
		OperacionID: opID,
		Estado:      op.Estado,
		Cambios:     aplicados,
		Etiquetas:   cambios.Etiquetas,
	}
}

// buscarOperacionID scans every "[id]" key for the well-known operation id
// field and reads its sibling value. If the scan finds nothing it falls back
// to the historical fixed position of the field in the lead layout.
func (s *webhookService) buscarOperacionID(payload map[string]string) (uint, bool) {
	for clave, valor := range payload {
		if !strings.HasSuffix(clave, sufijoCampoID) || valor != CampoOperacionID {
			continue
		}
		if id, ok := parseOperacionID(payload[claveValorPara(clave)]); ok {
			return id, true
		}
	}
	if id, ok := parseOperacionID(payload[claveOperacionFallback]); ok {
		return id, true
	}
	return 0, false
}

func parseOperacionID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (s *webhookService) extraerCambios(payload map[string]string) cambiosKommo {
	var c cambiosKommo
	for clave, campoID := range payload {
		if !strings.HasSuffix(clave, sufijoCampoID) {
			continue
		}
		valor, ok := payload[claveValorPara(clave)]
		if !ok || strings.TrimSpace(valor) == "" {
			continue
		}
		switch campoID {
		case CampoMontoAprobado:
			c.MontoAprobado = parseDecimalFlexible(valor)
		case CampoMontoAprobadoBanco:
			c.MontoAprobadoBanco = parseDecimalFlexible(valor)
		case CampoTasaAprobada:
			c.TasaAprobada = parseDecimalFlexible(valor)
		case CampoCuotaInicial:
			c.CuotaInicial = parseDecimalFlexible(valor)
		case CampoCuotaPromedio:
			c.CuotaPromedio = parseDecimalFlexible(valor)
		case CampoMesesAprobados:
			c.MesesAprobados = parseEnteroFlexible(valor)
		case CampoPlanAprobado:
			c.PlanAprobado = ptr(strings.TrimSpace(valor))
		case CampoAutoAprobado:
			c.AutoAprobado = ptr(strings.TrimSpace(valor))
		case CampoObservaciones:
			c.Observaciones = ptr(valor)
		case CampoUrlAprobadoDef:
			c.UrlAprobadoDef = ptr(strings.TrimSpace(valor))
		}
	}
	c.Etiquetas = extraerEtiquetas(payload)
	return c
}

// aplicar vuelca los cambios parseados sobre la operación y deriva el estado
// desde las etiquetas. Devuelve el detalle campo por campo para el resultado.
func (s *webhookService) aplicar(op *model.Operacion, c cambiosKommo) map[string]string {
	aplicados := make(map[string]string)

	if c.MontoAprobado != nil {
		op.MontoAprobado = c.MontoAprobado
		aplicados["monto_aprobado"] = c.MontoAprobado.String()
	}
	if c.MontoAprobadoBanco != nil {
		op.MontoAprobadoBanco = c.MontoAprobadoBanco
		aplicados["monto_aprobado_banco"] = c.MontoAprobadoBanco.String()
	}
	if c.TasaAprobada != nil {
		op.TasaAprobada = c.TasaAprobada
		aplicados["tasa_aprobada"] = c.TasaAprobada.String()
	}
	if c.CuotaInicial != nil {
		op.CuotaInicialAprobada = c.CuotaInicial
		aplicados["cuota_inicial_aprobada"] = c.CuotaInicial.String()
	}
	if c.CuotaPromedio != nil {
		op.CuotaPromedioAprobada = c.CuotaPromedio
		aplicados["cuota_promedio_aprobada"] = c.CuotaPromedio.String()
	}
	if c.MesesAprobados != nil {
		op.MesesAprobados = c.MesesAprobados
		aplicados["meses_aprobados"] = strconv.Itoa(*c.MesesAprobados)
	}
	if c.PlanAprobado != nil {
		op.PlanAprobadoNombre = c.PlanAprobado
		aplicados["plan_aprobado_nombre"] = *c.PlanAprobado
	}
	if c.AutoAprobado != nil {
		op.AutoAprobado = c.AutoAprobado
		aplicados["auto_aprobado"] = *c.AutoAprobado
	}
	if c.Observaciones != nil {
		op.Observaciones = c.Observaciones
		aplicados["observaciones"] = *c.Observaciones
	}
	if c.UrlAprobadoDef != nil {
		op.UrlAprobadoDef = c.UrlAprobadoDef
		aplicados["url_aprobado_def"] = *c.UrlAprobadoDef
	}

	estado := DerivarEstadoDeEtiquetas(c.Etiquetas)
	if estado != op.Estado {
		aplicados["estado"] = estado
	}
	op.Estado = estado

	ahora := time.Now().UTC()
	// Sellos de primera transición: una vez fechada, la aprobación o la
	// liquidación no se re-fechan por webhooks posteriores.
	if estado == estadoAprobadoDef && op.FechaAprobacion == nil {
		op.FechaAprobacion = &ahora
		aplicados["fecha_aprobacion"] = ahora.Format(time.RFC3339)
	}
	if estado == estadoLiquidadaWebhook && op.FechaLiquidacion == nil {
		op.FechaLiquidacion = &ahora
		op.Liquidada = true
		aplicados["fecha_liquidacion"] = ahora.Format(time.RFC3339)
	}

	op.RecomputarDashboard()
	return aplicados
}

func ptr(s string) *string { return &s }
