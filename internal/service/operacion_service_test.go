package service

import (
	"context"
	"testing"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type operacionFixture struct {
	svc      OperacionService
	repo     *stubOperacionRepo
	usuarios *stubUsuarioRepo
	vendedor *model.Usuario
	cliente  *model.Cliente
	plan     *model.Plan
}

func newOperacionFixture(t *testing.T) *operacionFixture {
	t.Helper()
	ctx := context.Background()

	canales := newStubCanalRepo()
	require.NoError(t, canales.Create(ctx, &model.Canal{ID: 1, Nombre: "Concesionarias", Activo: true}))
	require.NoError(t, canales.CreateSubcanal(ctx, &model.Subcanal{ID: 1, Nombre: "Zona Norte", CanalID: 1, Activo: true}))

	usuarios := newStubUsuarioRepo()
	subcanalID := uint(1)
	vendedor := usuarios.agregar(model.Usuario{
		Username: "vendedor@mp.com", Nombre: "Vende", Rol: model.RolVendedor,
		SubcanalID: &subcanalID, Activo: true,
	})

	clientes := newStubClienteRepo()
	cliente := &model.Cliente{Nombre: "Juan", Apellido: "Pérez", Dni: "30123456"}
	require.NoError(t, clientes.Create(ctx, cliente))

	planes := newStubPlanRepo()
	plan := &model.Plan{ID: 1, Nombre: "Prendario UVA", CuotasAplicables: "12,24", Tasa: dec("36"), Activo: true}
	require.NoError(t, planes.Create(ctx, plan))

	repo := newStubOperacionRepo()
	return &operacionFixture{
		svc:      NewOperacionService(repo, clientes, planes, usuarios, canales, nil),
		repo:     repo,
		usuarios: usuarios,
		vendedor: vendedor,
		cliente:  cliente,
		plan:     plan,
	}
}

func (f *operacionFixture) crearOperacion(t *testing.T) *dto.OperacionResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), f.vendedor.ID, dto.CrearOperacionRequest{
		Monto: dec("1000000"), Meses: 12, Tasa: dec("36"),
		ClienteID: f.cliente.ID, PlanID: f.plan.ID,
	})
	require.NoError(t, err)
	return resp
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func TestCrearOperacionDefaultsDelVendedor(t *testing.T) {
	f := newOperacionFixture(t)
	resp := f.crearOperacion(t)

	assert.Equal(t, model.EstadoPropuesta, resp.Estado)
	assert.Equal(t, model.DashboardIngresada, resp.EstadoDashboard)
	require.NotNil(t, resp.VendedorID)
	assert.Equal(t, f.vendedor.ID, *resp.VendedorID)
	require.NotNil(t, resp.SubcanalID)
	assert.Equal(t, uint(1), *resp.SubcanalID)
	require.NotNil(t, resp.CanalID)
	assert.Equal(t, uint(1), *resp.CanalID)
}

func TestCrearOperacionActualizaEstadisticasDelVendedor(t *testing.T) {
	f := newOperacionFixture(t)
	f.crearOperacion(t)
	f.crearOperacion(t)

	vendedor, err := f.usuarios.FindByID(context.Background(), f.vendedor.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, vendedor.CantidadOperaciones)
	assert.NotNil(t, vendedor.FechaUltimaOperacion)
}

func TestCrearOperacionClienteInexistente(t *testing.T) {
	f := newOperacionFixture(t)
	_, err := f.svc.Crear(context.Background(), f.vendedor.ID, dto.CrearOperacionRequest{
		Monto: dec("1000000"), Meses: 12, Tasa: dec("36"),
		ClienteID: 999, PlanID: f.plan.ID,
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestCrearOperacionPlanInexistente(t *testing.T) {
	f := newOperacionFixture(t)
	_, err := f.svc.Crear(context.Background(), f.vendedor.ID, dto.CrearOperacionRequest{
		Monto: dec("1000000"), Meses: 12, Tasa: dec("36"),
		ClienteID: f.cliente.ID, PlanID: 999,
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

// ── Aprobar ───────────────────────────────────────────────────────────────────

func TestAprobarOperacion(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)

	meses := 12
	resp, err := f.svc.Aprobar(context.Background(), creada.ID, dto.AprobarOperacionRequest{
		MontoAprobado:  dec("950000"),
		MesesAprobados: meses,
		TasaAprobada:   dec("38.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoAprobada, resp.Estado)
	assert.Equal(t, model.DashboardAprobada, resp.EstadoDashboard)
	require.NotNil(t, resp.MontoAprobado)
	assert.Equal(t, "950000.00", resp.MontoAprobado.StringFixed(2))
	assert.NotNil(t, resp.FechaAprobacion)
	assert.False(t, resp.Liquidada)
}

func TestReaprobarReemplazaElSnapshot(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)
	ctx := context.Background()

	_, err := f.svc.Aprobar(ctx, creada.ID, dto.AprobarOperacionRequest{
		MontoAprobado: dec("950000"), MesesAprobados: 12, TasaAprobada: dec("38.5"),
	})
	require.NoError(t, err)
	resp, err := f.svc.Aprobar(ctx, creada.ID, dto.AprobarOperacionRequest{
		MontoAprobado: dec("900000"), MesesAprobados: 24, TasaAprobada: dec("42"),
	})
	require.NoError(t, err)

	assert.Equal(t, "900000.00", resp.MontoAprobado.StringFixed(2))
	require.NotNil(t, resp.MesesAprobados)
	assert.Equal(t, 24, *resp.MesesAprobados)
}

func TestAprobarOperacionInexistente(t *testing.T) {
	f := newOperacionFixture(t)
	_, err := f.svc.Aprobar(context.Background(), 999, dto.AprobarOperacionRequest{
		MontoAprobado: dec("950000"), MesesAprobados: 12, TasaAprobada: dec("38.5"),
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

// ── Liquidar ──────────────────────────────────────────────────────────────────

func TestLiquidarOperacion(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)

	resp, err := f.svc.Liquidar(context.Background(), creada.ID, dto.LiquidarOperacionRequest{})
	require.NoError(t, err)

	assert.Equal(t, model.EstadoLiquidada, resp.Estado)
	assert.Equal(t, model.DashboardLiquidada, resp.EstadoDashboard)
	assert.True(t, resp.Liquidada)
	assert.NotNil(t, resp.FechaLiquidacion)
	assert.NotNil(t, resp.FechaProcLiq)
}

func TestLiquidarConFechaExplicita(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)

	fecha := "2026-03-15T10:00:00Z"
	resp, err := f.svc.Liquidar(context.Background(), creada.ID, dto.LiquidarOperacionRequest{
		FechaLiquidacion: &fecha,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FechaLiquidacion)
	assert.Equal(t, fecha, *resp.FechaLiquidacion)
}

func TestLiquidarConFechaInvalida(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)

	fecha := "15/03/2026"
	_, err := f.svc.Liquidar(context.Background(), creada.ID, dto.LiquidarOperacionRequest{
		FechaLiquidacion: &fecha,
	})
	assert.Error(t, err)
}

// ── Correcciones manuales ─────────────────────────────────────────────────────

func TestActualizarFechaLiquidacionMantieneInvariante(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)
	ctx := context.Background()

	fecha := time.Now().UTC().Format(time.RFC3339)
	require.NoError(t, f.svc.ActualizarFechaLiquidacion(ctx, creada.ID, dto.ActualizarFechaRequest{Fecha: &fecha}))

	op, err := f.repo.FindByID(ctx, creada.ID)
	require.NoError(t, err)
	assert.True(t, op.Liquidada)
	assert.NotNil(t, op.FechaLiquidacion)

	// Borrar la fecha también borra el flag.
	require.NoError(t, f.svc.ActualizarFechaLiquidacion(ctx, creada.ID, dto.ActualizarFechaRequest{}))
	op, err = f.repo.FindByID(ctx, creada.ID)
	require.NoError(t, err)
	assert.False(t, op.Liquidada)
	assert.Nil(t, op.FechaLiquidacion)
}

func TestActualizarFechaAprobacion(t *testing.T) {
	f := newOperacionFixture(t)
	creada := f.crearOperacion(t)
	ctx := context.Background()

	fecha := "2026-02-01T09:00:00Z"
	require.NoError(t, f.svc.ActualizarFechaAprobacion(ctx, creada.ID, dto.ActualizarFechaRequest{Fecha: &fecha}))

	op, err := f.repo.FindByID(ctx, creada.ID)
	require.NoError(t, err)
	require.NotNil(t, op.FechaAprobacion)
	assert.Equal(t, fecha, op.FechaAprobacion.Format(time.RFC3339))
}

// ── Listar ────────────────────────────────────────────────────────────────────

func TestListarVendedorSoloVeLasSuyas(t *testing.T) {
	f := newOperacionFixture(t)
	ctx := context.Background()
	f.crearOperacion(t)

	otroVendedorID := uint(77)
	f.repo.guardar(model.Operacion{
		Monto: dec("500000"), Meses: 12, Tasa: dec("36"),
		ClienteID: f.cliente.ID, PlanID: f.plan.ID, VendedorID: &otroVendedorID,
		Estado: model.EstadoPropuesta, EstadoDashboard: model.DashboardIngresada,
	})

	resp, err := f.svc.Listar(ctx, f.vendedor.ID, dto.OperacionFilter{Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, f.vendedor.ID, *resp.Data[0].VendedorID)
}
