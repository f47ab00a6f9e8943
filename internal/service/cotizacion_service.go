package service

import (
	"context"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"
)

type CotizacionService interface {
	// CotizarPublico resolves an anonymous quote against the regla catalog.
	CotizarPublico(ctx context.Context, req dto.CotizarRequest) (*dto.CotizacionResponse, error)
	// Cotizar resolves an authenticated quote against the plan catalog of the
	// acting subcanal's canal, applying the subcanal's gasto schedule.
	Cotizar(ctx context.Context, usuarioID uint, req dto.CotizarRequest) (*dto.CotizacionResponse, error)
}

type cotizacionService struct {
	planRepo    repository.PlanRepository
	reglaRepo   repository.ReglaCotizacionRepository
	gastoRepo   repository.GastoRepository
	canalRepo   repository.CanalRepository
	usuarioRepo repository.UsuarioRepository
}

func NewCotizacionService(
	planRepo repository.PlanRepository,
	reglaRepo repository.ReglaCotizacionRepository,
	gastoRepo repository.GastoRepository,
	canalRepo repository.CanalRepository,
	usuarioRepo repository.UsuarioRepository,
) CotizacionService {
	return &cotizacionService{
		planRepo:    planRepo,
		reglaRepo:   reglaRepo,
		gastoRepo:   gastoRepo,
		canalRepo:   canalRepo,
		usuarioRepo: usuarioRepo,
	}
}

// ── Cotización pública ────────────────────────────────────────────────────────

func (s *cotizacionService) CotizarPublico(ctx context.Context, req dto.CotizarRequest) (*dto.CotizacionResponse, error) {
	reglas, err := s.reglaRepo.FindVigentes(ctx, req.Monto, req.Cuotas, time.Now())
	if err != nil {
		return nil, err
	}
	if len(reglas) == 0 {
		return nil, ErrReglaNoAplicable
	}
	// Candidates come ordered by id ASC; the lowest id wins.
	regla := reglas[0]

	cuota := CalcularCuota(req.Monto, regla.Tasa, req.Cuotas, regla.GastoOtorgamiento)
	return &dto.CotizacionResponse{
		Monto:             req.Monto,
		Cuotas:            req.Cuotas,
		Tasa:              regla.Tasa,
		GastoOtorgamiento: regla.GastoOtorgamiento,
		CuotaMensual:      cuota,
		CostoTotal:        CostoTotal(cuota, req.Cuotas),
		PlanID:            regla.ID,
		PlanNombre:        regla.Nombre,
	}, nil
}

// ── Cotización autenticada ────────────────────────────────────────────────────

func (s *cotizacionService) Cotizar(ctx context.Context, usuarioID uint, req dto.CotizarRequest) (*dto.CotizacionResponse, error) {
	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		return nil, ErrNoEncontrado
	}

	subcanal, err := s.resolverSubcanal(ctx, usuario, req.SubcanalID)
	if err != nil {
		return nil, err
	}

	gastos, err := s.gastoRepo.ListBySubcanal(ctx, subcanal.ID)
	if err != nil {
		return nil, err
	}

	planes, err := s.planRepo.FindVigentes(ctx, subcanal.CanalID, req.Monto, req.Cuotas, time.Now())
	if err != nil {
		return nil, err
	}
	if len(planes) == 0 {
		return nil, ErrSinPlanAplicable
	}
	plan := planes[0]

	// The plan's flat rate is the default; a PlanTasa row for the term refines
	// it by vehicle-age bracket when the caller supplied the vehicle age.
	tasa := plan.Tasa
	if req.AntiguedadAuto != nil {
		if pt, err := s.planRepo.FindTasa(ctx, plan.ID, req.Cuotas); err == nil {
			tasa = pt.TasaParaAntiguedad(*req.AntiguedadAuto)
		}
	}

	itemizados := make([]dto.GastoCotizado, 0, len(gastos))
	principal := req.Monto
	for _, g := range gastos {
		monto := req.Monto.Mul(g.Porcentaje).Div(cien).Round(2)
		principal = principal.Add(monto)
		itemizados = append(itemizados, dto.GastoCotizado{
			Nombre:     g.Nombre,
			Porcentaje: g.Porcentaje,
			Monto:      monto,
		})
	}

	cuota := CalcularCuota(principal, tasa, req.Cuotas, plan.GastoOtorgamiento)
	return &dto.CotizacionResponse{
		Monto:             req.Monto,
		Cuotas:            req.Cuotas,
		Tasa:              tasa,
		GastoOtorgamiento: plan.GastoOtorgamiento,
		CuotaMensual:      cuota,
		CostoTotal:        CostoTotal(cuota, req.Cuotas),
		PlanID:            plan.ID,
		PlanNombre:        plan.Nombre,
		Gastos:            itemizados,
	}, nil
}

// resolverSubcanal determines the acting subcanal: the explicit one when the
// caller is authorized for it, otherwise the vendedor's own assignment or the
// first subcanal administered by an admincanal.
func (s *cotizacionService) resolverSubcanal(ctx context.Context, usuario *model.Usuario, subcanalID *uint) (*model.Subcanal, error) {
	if subcanalID != nil {
		subcanal, err := s.canalRepo.FindSubcanalByID(ctx, *subcanalID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		if !s.autorizadoPara(usuario, subcanal) {
			return nil, ErrSinSubcanalAsignado
		}
		return subcanal, nil
	}

	switch {
	case usuario.EsVendedor() && usuario.SubcanalID != nil:
		subcanal, err := s.canalRepo.FindSubcanalByID(ctx, *usuario.SubcanalID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		return subcanal, nil
	case usuario.EsAdminCanal():
		subcanal, err := s.canalRepo.FindPrimerSubcanalAdmin(ctx, usuario.ID)
		if err != nil {
			return nil, ErrSinSubcanalAsignado
		}
		return subcanal, nil
	default:
		return nil, ErrSinSubcanalAsignado
	}
}

func (s *cotizacionService) autorizadoPara(usuario *model.Usuario, subcanal *model.Subcanal) bool {
	switch usuario.Rol {
	case model.RolAdministrador, model.RolOficialComercial:
		return true
	case model.RolVendedor:
		return usuario.SubcanalID != nil && *usuario.SubcanalID == subcanal.ID
	case model.RolAdminCanal:
		return subcanal.AdminCanalID != nil && *subcanal.AdminCanalID == usuario.ID
	default:
		return false
	}
}
