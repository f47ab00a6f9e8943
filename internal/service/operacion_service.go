package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/worker"

	"github.com/rs/zerolog/log"
)

type OperacionService interface {
	Crear(ctx context.Context, creadorID uint, req dto.CrearOperacionRequest) (*dto.OperacionResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.OperacionResponse, error)
	Listar(ctx context.Context, usuarioID uint, filter dto.OperacionFilter) (*dto.OperacionListResponse, error)
	Aprobar(ctx context.Context, id uint, req dto.AprobarOperacionRequest) (*dto.OperacionResponse, error)
	Liquidar(ctx context.Context, id uint, req dto.LiquidarOperacionRequest) (*dto.OperacionResponse, error)

	// Correcciones manuales de fechas, independientes de la transición de
	// estado. Clearing fecha_liquidacion also clears Liquidada.
	ActualizarFechaAprobacion(ctx context.Context, id uint, req dto.ActualizarFechaRequest) error
	ActualizarFechaLiquidacion(ctx context.Context, id uint, req dto.ActualizarFechaRequest) error
}

type operacionService struct {
	repo        repository.OperacionRepository
	clienteRepo repository.ClienteRepository
	planRepo    repository.PlanRepository
	usuarioRepo repository.UsuarioRepository
	canalRepo   repository.CanalRepository
	dispatcher  *worker.Dispatcher
}

func NewOperacionService(
	repo repository.OperacionRepository,
	clienteRepo repository.ClienteRepository,
	planRepo repository.PlanRepository,
	usuarioRepo repository.UsuarioRepository,
	canalRepo repository.CanalRepository,
	dispatcher *worker.Dispatcher,
) OperacionService {
	return &operacionService{
		repo:        repo,
		clienteRepo: clienteRepo,
		planRepo:    planRepo,
		usuarioRepo: usuarioRepo,
		canalRepo:   canalRepo,
		dispatcher:  dispatcher,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
//  1. Validate cliente and plan exist
//  2. Default vendedor/subcanal/canal from the creator's assignment when the
//     creator is a vendedor and none was supplied
//  3. Persist with Estado="Propuesta", EstadoDashboard="INGRESADA"
//  4. Bump the attributed vendedor's statistics cache
//  5. (async) enqueue the CRM lead sync

func (s *operacionService) Crear(ctx context.Context, creadorID uint, req dto.CrearOperacionRequest) (*dto.OperacionResponse, error) {
	if _, err := s.clienteRepo.FindByID(ctx, req.ClienteID); err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.planRepo.FindByID(ctx, req.PlanID); err != nil {
		return nil, ErrNoEncontrado
	}

	creador, err := s.usuarioRepo.FindByID(ctx, creadorID)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	op := model.Operacion{
		Monto:            req.Monto,
		Meses:            req.Meses,
		Tasa:             req.Tasa,
		ClienteID:        req.ClienteID,
		PlanID:           req.PlanID,
		VendedorID:       req.VendedorID,
		SubcanalID:       req.SubcanalID,
		CanalID:          req.CanalID,
		UsuarioCreadorID: creadorID,
		Estado:           model.EstadoPropuesta,
		EstadoDashboard:  model.DashboardIngresada,
	}

	if creador.EsVendedor() {
		if op.VendedorID == nil {
			op.VendedorID = &creador.ID
		}
		if op.SubcanalID == nil && creador.SubcanalID != nil {
			op.SubcanalID = creador.SubcanalID
			if op.CanalID == nil {
				if subcanal, err := s.canalRepo.FindSubcanalByID(ctx, *creador.SubcanalID); err == nil {
					op.CanalID = &subcanal.CanalID
				}
			}
		}
	}

	if err := s.repo.Create(ctx, &op); err != nil {
		return nil, err
	}

	if op.VendedorID != nil {
		if err := s.usuarioRepo.RegistrarOperacion(ctx, *op.VendedorID, time.Now()); err != nil {
			log.Warn().Err(err).Uint("vendedor_id", *op.VendedorID).
				Msg("operacion: no se pudo actualizar estadísticas del vendedor")
		}
	}

	// Best-effort: the CRM sync worker retries on its own.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueCRMSync(ctx, worker.CRMSyncJobPayload{OperacionID: op.ID})
	}

	return operacionToResponse(&op), nil
}

func (s *operacionService) ObtenerPorID(ctx context.Context, id uint) (*dto.OperacionResponse, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	return operacionToResponse(op), nil
}

// Listar narrows by role: a vendedor only sees operations attributed to them.
func (s *operacionService) Listar(ctx context.Context, usuarioID uint, filter dto.OperacionFilter) (*dto.OperacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var vendedorID uint
	if usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID); err == nil && usuario.EsVendedor() {
		vendedorID = usuario.ID
	}

	operaciones, total, err := s.repo.List(ctx, filter, vendedorID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperacionResponse, 0, len(operaciones))
	for i := range operaciones {
		items = append(items, *operacionToResponse(&operaciones[i]))
	}
	return &dto.OperacionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Aprobar ───────────────────────────────────────────────────────────────────
// Overwrites the approval snapshot unconditionally — re-approving replaces the
// previous snapshot, even on an already liquidated operation (kept permissive;
// only logged).

func (s *operacionService) Aprobar(ctx context.Context, id uint, req dto.AprobarOperacionRequest) (*dto.OperacionResponse, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	if op.Liquidada {
		log.Warn().Uint("operacion_id", op.ID).Msg("operacion: aprobando una operación ya liquidada")
	}

	ahora := time.Now()
	op.MontoAprobado = &req.MontoAprobado
	op.MontoAprobadoBanco = req.MontoAprobadoBanco
	op.MesesAprobados = &req.MesesAprobados
	op.TasaAprobada = &req.TasaAprobada
	op.PlanAprobadoID = req.PlanAprobadoID
	op.PlanAprobadoNombre = req.PlanAprobadoNombre
	op.CuotaInicialAprobada = req.CuotaInicialAprobada
	op.CuotaPromedioAprobada = req.CuotaPromedioAprobada
	op.AutoAprobado = req.AutoAprobado
	op.BancoAprobado = req.BancoAprobado
	op.Observaciones = req.Observaciones
	op.FechaAprobacion = &ahora
	op.Estado = model.EstadoAprobada
	op.RecomputarDashboard()

	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}

	s.notificarVendedor(ctx, op, fmt.Sprintf("Operación #%d aprobada", op.ID))
	return operacionToResponse(op), nil
}

// ── Liquidar ──────────────────────────────────────────────────────────────────

func (s *operacionService) Liquidar(ctx context.Context, id uint, req dto.LiquidarOperacionRequest) (*dto.OperacionResponse, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	ahora := time.Now()
	fecha := ahora
	if req.FechaLiquidacion != nil {
		parsed, err := time.Parse(time.RFC3339, *req.FechaLiquidacion)
		if err != nil {
			return nil, fmt.Errorf("fecha_liquidacion inválida: %w", err)
		}
		fecha = parsed
	}

	op.Liquidada = true
	op.FechaLiquidacion = &fecha
	op.FechaProcLiq = &ahora
	op.Estado = model.EstadoLiquidada
	op.RecomputarDashboard()

	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}

	s.notificarVendedor(ctx, op, fmt.Sprintf("Operación #%d liquidada", op.ID))
	return operacionToResponse(op), nil
}

// ── Correcciones manuales ─────────────────────────────────────────────────────

func (s *operacionService) ActualizarFechaAprobacion(ctx context.Context, id uint, req dto.ActualizarFechaRequest) error {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado
	}
	fecha, err := parseFechaOpcional(req.Fecha)
	if err != nil {
		return err
	}
	op.FechaAprobacion = fecha
	return s.repo.Update(ctx, op)
}

func (s *operacionService) ActualizarFechaLiquidacion(ctx context.Context, id uint, req dto.ActualizarFechaRequest) error {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrNoEncontrado
	}
	fecha, err := parseFechaOpcional(req.Fecha)
	if err != nil {
		return err
	}
	// Contract: Liquidada == (FechaLiquidacion != nil), on every write path.
	op.FechaLiquidacion = fecha
	op.Liquidada = fecha != nil
	return s.repo.Update(ctx, op)
}

func parseFechaOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}
	return &t, nil
}

func (s *operacionService) notificarVendedor(ctx context.Context, op *model.Operacion, asunto string) {
	if s.dispatcher == nil || op.VendedorID == nil {
		return
	}
	vendedor, err := s.usuarioRepo.FindByID(ctx, *op.VendedorID)
	if err != nil || vendedor.Email == nil || *vendedor.Email == "" {
		return
	}
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail:     *vendedor.Email,
		Subject:     asunto,
		Body:        fmt.Sprintf("La operación #%d cambió de estado: %s", op.ID, op.Estado),
		OperacionID: op.ID,
	})
}

func operacionToResponse(o *model.Operacion) *dto.OperacionResponse {
	resp := &dto.OperacionResponse{
		ID:              o.ID,
		Monto:           o.Monto,
		Meses:           o.Meses,
		Tasa:            o.Tasa,
		ClienteID:       o.ClienteID,
		PlanID:          o.PlanID,
		VendedorID:      o.VendedorID,
		SubcanalID:      o.SubcanalID,
		CanalID:         o.CanalID,
		Estado:          o.Estado,
		EstadoDashboard: o.EstadoDashboard,
		FechaCreacion:   o.CreatedAt.Format(time.RFC3339),

		MontoAprobado:         o.MontoAprobado,
		MontoAprobadoBanco:    o.MontoAprobadoBanco,
		MesesAprobados:        o.MesesAprobados,
		TasaAprobada:          o.TasaAprobada,
		PlanAprobadoID:        o.PlanAprobadoID,
		PlanAprobadoNombre:    o.PlanAprobadoNombre,
		CuotaInicialAprobada:  o.CuotaInicialAprobada,
		CuotaPromedioAprobada: o.CuotaPromedioAprobada,
		AutoAprobado:          o.AutoAprobado,
		BancoAprobado:         o.BancoAprobado,
		UrlAprobadoDef:        o.UrlAprobadoDef,
		Observaciones:         o.Observaciones,

		Liquidada: o.Liquidada,
	}
	if o.Cliente != nil {
		resp.ClienteNombre = o.Cliente.Apellido + ", " + o.Cliente.Nombre
	}
	if o.Plan != nil {
		resp.PlanNombre = o.Plan.Nombre
	}
	resp.FechaAprobacion = formatFecha(o.FechaAprobacion)
	resp.FechaLiquidacion = formatFecha(o.FechaLiquidacion)
	resp.FechaProcLiq = formatFecha(o.FechaProcLiq)
	return resp
}

func formatFecha(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
