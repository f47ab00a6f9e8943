package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// payloadKommo arma el formulario plano que Kommo envía: cada custom field
// ocupa un índice con su clave "[id]" y su clave de valor hermana.
type payloadKommo struct {
	datos map[string]string
	idx   int
}

func nuevoPayload() *payloadKommo {
	return &payloadKommo{datos: make(map[string]string)}
}

func (p *payloadKommo) campo(campoID, valor string) *payloadKommo {
	base := "leads[status][0][custom_fields][" + strconv.Itoa(p.idx) + "]"
	p.datos[base+"[id]"] = campoID
	p.datos[base+"[values][0][value]"] = valor
	p.idx++
	return p
}

func (p *payloadKommo) etiqueta(nombre string) *payloadKommo {
	for i := 0; i < maxEtiquetas; i++ {
		clave := prefijoEtiqueta + strconv.Itoa(i) + sufijoEtiqueta
		if _, ocupada := p.datos[clave]; !ocupada {
			p.datos[clave] = nombre
			return p
		}
	}
	return p
}

func newWebhookFixture() (WebhookService, *stubOperacionRepo) {
	repo := newStubOperacionRepo()
	return NewWebhookService(repo, zerolog.Nop()), repo
}

func sembrarOperacion(repo *stubOperacionRepo) *model.Operacion {
	return repo.guardar(model.Operacion{
		Monto: dec("1000000"), Meses: 12, Tasa: dec("36"),
		ClienteID: 1, PlanID: 1, UsuarioCreadorID: 1,
		Estado: model.EstadoPropuesta, EstadoDashboard: model.DashboardIngresada,
	})
}

func TestWebhookAplicaCamposYEstado(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		campo(CampoMontoAprobado, "950000").
		campo(CampoTasaAprobada, "38,5").
		campo(CampoMesesAprobados, "12").
		campo(CampoPlanAprobado, "Prendario UVA").
		etiqueta("Aprobado definitivo")

	resultado := svc.Procesar(ctx, payload.datos)
	require.True(t, resultado.Success)
	assert.Equal(t, op.ID, resultado.OperacionID)
	assert.Equal(t, "APROBADO DEF", resultado.Estado)

	guardada, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, "APROBADO DEF", guardada.Estado)
	assert.Equal(t, model.DashboardAprobada, guardada.EstadoDashboard)
	require.NotNil(t, guardada.MontoAprobado)
	assert.Equal(t, "950000.00", guardada.MontoAprobado.StringFixed(2))
	require.NotNil(t, guardada.TasaAprobada)
	assert.Equal(t, "38.5", guardada.TasaAprobada.String())
	require.NotNil(t, guardada.MesesAprobados)
	assert.Equal(t, 12, *guardada.MesesAprobados)
	require.NotNil(t, guardada.PlanAprobadoNombre)
	assert.Equal(t, "Prendario UVA", *guardada.PlanAprobadoNombre)
	assert.NotNil(t, guardada.FechaAprobacion)
}

func TestWebhookMontoFormatoArgentino(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		campo(CampoMontoAprobado, "12.500,75")

	resultado := svc.Procesar(ctx, payload.datos)
	require.True(t, resultado.Success)

	guardada, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	require.NotNil(t, guardada.MontoAprobado)
	assert.Equal(t, "12500.75", guardada.MontoAprobado.String())
}

func TestWebhookMontoIlegibleSeIgnora(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		campo(CampoMontoAprobado, "no es un número")

	resultado := svc.Procesar(ctx, payload.datos)
	require.True(t, resultado.Success)

	guardada, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	assert.Nil(t, guardada.MontoAprobado)
}

func TestWebhookVariasEtiquetasCaenEnGestion(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		etiqueta("Aprobado definitivo").
		etiqueta("Enviar a Banco")

	resultado := svc.Procesar(ctx, payload.datos)
	require.True(t, resultado.Success)
	assert.Equal(t, model.EstadoEnGestion, resultado.Estado)
	assert.Len(t, resultado.Etiquetas, 2)
}

func TestWebhookFechasDePrimeraTransicion(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	aprobado := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		etiqueta("Aprobado definitivo")
	require.True(t, svc.Procesar(ctx, aprobado.datos).Success)

	primera, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	require.NotNil(t, primera.FechaAprobacion)
	fechaOriginal := *primera.FechaAprobacion

	// Un segundo webhook con la misma etiqueta no re-fecha la aprobación.
	time.Sleep(5 * time.Millisecond)
	require.True(t, svc.Procesar(ctx, aprobado.datos).Success)
	segunda, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	assert.True(t, segunda.FechaAprobacion.Equal(fechaOriginal))
}

func TestWebhookLiquidadaSellaFechaYFlag(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := nuevoPayload().
		campo(CampoOperacionID, strconv.Itoa(int(op.ID))).
		etiqueta("Buqueado")

	resultado := svc.Procesar(ctx, payload.datos)
	require.True(t, resultado.Success)
	assert.Equal(t, "LIQUIDADA", resultado.Estado)

	guardada, err := repo.FindByID(ctx, op.ID)
	require.NoError(t, err)
	assert.True(t, guardada.Liquidada)
	assert.NotNil(t, guardada.FechaLiquidacion)
	assert.Equal(t, model.DashboardLiquidada, guardada.EstadoDashboard)
}

func TestWebhookIDPorClaveDeRespaldo(t *testing.T) {
	svc, repo := newWebhookFixture()
	op := sembrarOperacion(repo)
	ctx := context.Background()

	payload := map[string]string{
		claveOperacionFallback: strconv.Itoa(int(op.ID)),
	}
	resultado := svc.Procesar(ctx, payload)
	require.True(t, resultado.Success)
	assert.Equal(t, op.ID, resultado.OperacionID)
}

func TestWebhookSinIDDeOperacion(t *testing.T) {
	svc, _ := newWebhookFixture()

	payload := nuevoPayload().campo(CampoMontoAprobado, "950000")
	resultado := svc.Procesar(context.Background(), payload.datos)
	assert.False(t, resultado.Success)
	assert.NotEmpty(t, resultado.Error)
}

func TestWebhookOperacionInexistente(t *testing.T) {
	svc, _ := newWebhookFixture()

	payload := nuevoPayload().campo(CampoOperacionID, "424242")
	resultado := svc.Procesar(context.Background(), payload.datos)
	assert.False(t, resultado.Success)
	assert.Equal(t, uint(424242), resultado.OperacionID)
	assert.Equal(t, "operación no encontrada", resultado.Error)
}
