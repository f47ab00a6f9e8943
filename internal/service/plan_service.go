package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/rs/zerolog"
)

// PlanService administra el catálogo de planes, sus vínculos con canales y
// las tasas por plazo, más las reglas de cotización anónima.
type PlanService interface {
	CrearPlan(ctx context.Context, req dto.CrearPlanRequest) (*dto.PlanResponse, error)
	ObtenerPlan(ctx context.Context, id uint) (*dto.PlanResponse, error)
	ListarPlanes(ctx context.Context, incluirInactivos bool) ([]dto.PlanResponse, error)
	ActualizarPlan(ctx context.Context, id uint, req dto.ActualizarPlanRequest) (*dto.PlanResponse, error)
	SetPlanActivo(ctx context.Context, id uint, activo bool) error

	AgregarTasa(ctx context.Context, planID uint, req dto.CrearPlanTasaRequest) (*dto.PlanTasaResponse, error)
	VincularCanal(ctx context.Context, planID, canalID uint) error
	SetCanalActivo(ctx context.Context, planID, canalID uint, activo bool) error

	CrearRegla(ctx context.Context, req dto.CrearReglaRequest) (*dto.ReglaResponse, error)
	ListarReglas(ctx context.Context, incluirInactivos bool) ([]dto.ReglaResponse, error)
	SetReglaActivo(ctx context.Context, id uint, activo bool) error
}

type planService struct {
	planes repository.PlanRepository
	reglas repository.ReglaCotizacionRepository
	logger zerolog.Logger
}

func NewPlanService(planes repository.PlanRepository, reglas repository.ReglaCotizacionRepository, logger zerolog.Logger) PlanService {
	return &planService{planes: planes, reglas: reglas, logger: logger}
}

func (s *planService) CrearPlan(ctx context.Context, req dto.CrearPlanRequest) (*dto.PlanResponse, error) {
	inicio, fin, err := parseVentana(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if err := validarCuotasCSV(req.CuotasAplicables, model.PlazosPlan); err != nil {
		return nil, err
	}
	if req.MontoMaximo.LessThan(req.MontoMinimo) {
		return nil, fmt.Errorf("%w: monto_maximo menor que monto_minimo", ErrConfiguracionInvalida)
	}

	plan := &model.Plan{
		Nombre:            req.Nombre,
		FechaInicio:       inicio,
		FechaFin:          fin,
		MontoMinimo:       req.MontoMinimo,
		MontoMaximo:       req.MontoMaximo,
		CuotasAplicables:  req.CuotasAplicables,
		Tasa:              req.Tasa,
		GastoOtorgamiento: req.GastoOtorgamiento,
		Banco:             req.Banco,
		Activo:            true,
	}
	if err := s.planes.Create(ctx, plan); err != nil {
		return nil, err
	}

	for _, canalID := range req.CanalIDs {
		link := &model.PlanCanal{PlanID: plan.ID, CanalID: canalID, Activo: true}
		if err := s.planes.LinkCanal(ctx, link); err != nil {
			s.logger.Warn().Err(err).Uint("plan_id", plan.ID).Uint("canal_id", canalID).
				Msg("no se pudo vincular el plan al canal")
		}
	}

	s.logger.Info().Uint("plan_id", plan.ID).Str("nombre", plan.Nombre).Msg("plan creado")
	resp := planToResponse(plan)
	return &resp, nil
}

func (s *planService) ObtenerPlan(ctx context.Context, id uint) (*dto.PlanResponse, error) {
	plan, err := s.planes.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := planToResponse(plan)
	return &resp, nil
}

func (s *planService) ListarPlanes(ctx context.Context, incluirInactivos bool) ([]dto.PlanResponse, error) {
	planes, err := s.planes.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PlanResponse, len(planes))
	for i := range planes {
		resp[i] = planToResponse(&planes[i])
	}
	return resp, nil
}

func (s *planService) ActualizarPlan(ctx context.Context, id uint, req dto.ActualizarPlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.planes.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if req.Nombre != "" {
		plan.Nombre = req.Nombre
	}
	if req.FechaInicio != nil {
		t, err := parseFechaPlan(*req.FechaInicio)
		if err != nil {
			return nil, err
		}
		plan.FechaInicio = t
	}
	if req.FechaFin != nil {
		t, err := parseFechaPlan(*req.FechaFin)
		if err != nil {
			return nil, err
		}
		plan.FechaFin = t
	}
	if req.MontoMinimo != nil {
		plan.MontoMinimo = *req.MontoMinimo
	}
	if req.MontoMaximo != nil {
		plan.MontoMaximo = *req.MontoMaximo
	}
	if req.CuotasAplicables != nil {
		if err := validarCuotasCSV(*req.CuotasAplicables, model.PlazosPlan); err != nil {
			return nil, err
		}
		plan.CuotasAplicables = *req.CuotasAplicables
	}
	if req.Tasa != nil {
		plan.Tasa = *req.Tasa
	}
	if req.GastoOtorgamiento != nil {
		plan.GastoOtorgamiento = *req.GastoOtorgamiento
	}
	if req.Banco != nil {
		plan.Banco = *req.Banco
	}
	if plan.MontoMaximo.LessThan(plan.MontoMinimo) {
		return nil, fmt.Errorf("%w: monto_maximo menor que monto_minimo", ErrConfiguracionInvalida)
	}
	if err := s.planes.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := planToResponse(plan)
	return &resp, nil
}

func (s *planService) SetPlanActivo(ctx context.Context, id uint, activo bool) error {
	if _, err := s.planes.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.planes.SetActivo(ctx, id, activo)
}

func (s *planService) AgregarTasa(ctx context.Context, planID uint, req dto.CrearPlanTasaRequest) (*dto.PlanTasaResponse, error) {
	if _, err := s.planes.FindByID(ctx, planID); err != nil {
		return nil, ErrNoEncontrado
	}
	if !model.PlazoEnSet(req.Plazo, model.PlazosPlan) {
		return nil, fmt.Errorf("%w: plazo %d fuera del set de plazos de plan", ErrConfiguracionInvalida, req.Plazo)
	}
	if existente, err := s.planes.FindTasa(ctx, planID, req.Plazo); err == nil && existente.ID != 0 {
		return nil, fmt.Errorf("%w: el plan ya tiene tasa para el plazo %d", ErrConfiguracionInvalida, req.Plazo)
	}

	tasa := &model.PlanTasa{
		PlanID: planID,
		Plazo:  req.Plazo,
		TasaA:  req.TasaA,
		TasaB:  req.TasaB,
		TasaC:  req.TasaC,
	}
	if err := s.planes.CreateTasa(ctx, tasa); err != nil {
		return nil, err
	}
	return &dto.PlanTasaResponse{
		ID: tasa.ID, Plazo: tasa.Plazo,
		TasaA: tasa.TasaA, TasaB: tasa.TasaB, TasaC: tasa.TasaC,
	}, nil
}

func (s *planService) VincularCanal(ctx context.Context, planID, canalID uint) error {
	if _, err := s.planes.FindByID(ctx, planID); err != nil {
		return ErrNoEncontrado
	}
	return s.planes.LinkCanal(ctx, &model.PlanCanal{PlanID: planID, CanalID: canalID, Activo: true})
}

func (s *planService) SetCanalActivo(ctx context.Context, planID, canalID uint, activo bool) error {
	return s.planes.SetCanalActivo(ctx, planID, canalID, activo)
}

func (s *planService) CrearRegla(ctx context.Context, req dto.CrearReglaRequest) (*dto.ReglaResponse, error) {
	inicio, fin, err := parseVentana(req.FechaInicio, req.FechaFin)
	if err != nil {
		return nil, err
	}
	if err := validarCuotasCSV(req.CuotasAplicables, model.PlazosRegla); err != nil {
		return nil, err
	}

	regla := &model.ReglaCotizacion{
		Nombre:            req.Nombre,
		FechaInicio:       inicio,
		FechaFin:          fin,
		MontoMinimo:       req.MontoMinimo,
		MontoMaximo:       req.MontoMaximo,
		CuotasAplicables:  req.CuotasAplicables,
		Tasa:              req.Tasa,
		GastoOtorgamiento: req.GastoOtorgamiento,
		Activo:            true,
	}
	if err := s.reglas.Create(ctx, regla); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("regla_id", regla.ID).Str("nombre", regla.Nombre).Msg("regla de cotización creada")
	resp := reglaToResponse(regla)
	return &resp, nil
}

func (s *planService) ListarReglas(ctx context.Context, incluirInactivos bool) ([]dto.ReglaResponse, error) {
	reglas, err := s.reglas.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReglaResponse, len(reglas))
	for i := range reglas {
		resp[i] = reglaToResponse(&reglas[i])
	}
	return resp, nil
}

func (s *planService) SetReglaActivo(ctx context.Context, id uint, activo bool) error {
	if _, err := s.reglas.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.reglas.SetActivo(ctx, id, activo)
}

// parseFechaPlan accepts both date-only and RFC 3339 timestamps; the catalog
// UI sends dates, integrations send timestamps.
func parseFechaPlan(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q no reconocida", ErrConfiguracionInvalida, s)
	}
	return t, nil
}

func parseVentana(inicio, fin string) (time.Time, time.Time, error) {
	i, err := parseFechaPlan(inicio)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	f, err := parseFechaPlan(fin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if f.Before(i) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", ErrConfiguracionInvalida)
	}
	return i, f, nil
}

// validarCuotasCSV rejects a term list that is empty or contains a term
// outside the canonical set for the offer type.
func validarCuotasCSV(csv string, set []int) error {
	cuotas := model.CuotasDeCSV(csv)
	if len(cuotas) == 0 {
		return fmt.Errorf("%w: cuotas_aplicables vacío o ilegible", ErrConfiguracionInvalida)
	}
	for _, c := range cuotas {
		if !model.PlazoEnSet(c, set) {
			return fmt.Errorf("%w: plazo %d fuera del set canónico", ErrConfiguracionInvalida, c)
		}
	}
	return nil
}

func planToResponse(p *model.Plan) dto.PlanResponse {
	resp := dto.PlanResponse{
		ID:                p.ID,
		Nombre:            p.Nombre,
		FechaInicio:       p.FechaInicio.Format("2006-01-02"),
		FechaFin:          p.FechaFin.Format("2006-01-02"),
		MontoMinimo:       p.MontoMinimo,
		MontoMaximo:       p.MontoMaximo,
		CuotasAplicables:  p.CuotasAplicables,
		Tasa:              p.Tasa,
		GastoOtorgamiento: p.GastoOtorgamiento,
		Banco:             p.Banco,
		Activo:            p.Activo,
	}
	for _, t := range p.Tasas {
		resp.Tasas = append(resp.Tasas, dto.PlanTasaResponse{
			ID: t.ID, Plazo: t.Plazo, TasaA: t.TasaA, TasaB: t.TasaB, TasaC: t.TasaC,
		})
	}
	return resp
}

func reglaToResponse(r *model.ReglaCotizacion) dto.ReglaResponse {
	return dto.ReglaResponse{
		ID:                r.ID,
		Nombre:            r.Nombre,
		FechaInicio:       r.FechaInicio.Format("2006-01-02"),
		FechaFin:          r.FechaFin.Format("2006-01-02"),
		MontoMinimo:       r.MontoMinimo,
		MontoMaximo:       r.MontoMaximo,
		CuotasAplicables:  r.CuotasAplicables,
		Tasa:              r.Tasa,
		GastoOtorgamiento: r.GastoOtorgamiento,
		Activo:            r.Activo,
	}
}
