package service

import (
	"context"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"github.com/rs/zerolog"
)

// CanalService administra canales, subcanales y los gastos por subcanal.
type CanalService interface {
	CrearCanal(ctx context.Context, req dto.CrearCanalRequest) (*dto.CanalResponse, error)
	ObtenerCanal(ctx context.Context, id uint) (*dto.CanalResponse, error)
	ListarCanales(ctx context.Context) ([]dto.CanalResponse, error)
	DesactivarCanal(ctx context.Context, id uint) error

	CrearSubcanal(ctx context.Context, req dto.CrearSubcanalRequest) (*dto.SubcanalResponse, error)
	ListarSubcanales(ctx context.Context, canalID uint) ([]dto.SubcanalResponse, error)
	AsignarAdmin(ctx context.Context, subcanalID, adminID uint) error

	CrearGasto(ctx context.Context, subcanalID uint, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	EliminarGasto(ctx context.Context, gastoID uint) error
}

type canalService struct {
	canales  repository.CanalRepository
	gastos   repository.GastoRepository
	usuarios repository.UsuarioRepository
	logger   zerolog.Logger
}

func NewCanalService(canales repository.CanalRepository, gastos repository.GastoRepository, usuarios repository.UsuarioRepository, logger zerolog.Logger) CanalService {
	return &canalService{canales: canales, gastos: gastos, usuarios: usuarios, logger: logger}
}

func (s *canalService) CrearCanal(ctx context.Context, req dto.CrearCanalRequest) (*dto.CanalResponse, error) {
	canal := &model.Canal{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.canales.Create(ctx, canal); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("canal_id", canal.ID).Str("nombre", canal.Nombre).Msg("canal creado")
	resp := canalToResponse(canal)
	return &resp, nil
}

func (s *canalService) ObtenerCanal(ctx context.Context, id uint) (*dto.CanalResponse, error) {
	canal, err := s.canales.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := canalToResponse(canal)
	return &resp, nil
}

func (s *canalService) ListarCanales(ctx context.Context) ([]dto.CanalResponse, error) {
	canales, err := s.canales.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CanalResponse, len(canales))
	for i := range canales {
		resp[i] = canalToResponse(&canales[i])
	}
	return resp, nil
}

func (s *canalService) DesactivarCanal(ctx context.Context, id uint) error {
	if _, err := s.canales.FindByID(ctx, id); err != nil {
		return ErrNoEncontrado
	}
	return s.canales.SoftDelete(ctx, id)
}

func (s *canalService) CrearSubcanal(ctx context.Context, req dto.CrearSubcanalRequest) (*dto.SubcanalResponse, error) {
	if _, err := s.canales.FindByID(ctx, req.CanalID); err != nil {
		return nil, ErrNoEncontrado
	}
	sub := &model.Subcanal{
		Nombre:       req.Nombre,
		CanalID:      req.CanalID,
		AdminCanalID: req.AdminCanalID,
		Activo:       true,
	}
	if err := s.canales.CreateSubcanal(ctx, sub); err != nil {
		return nil, err
	}
	resp := subcanalToResponse(sub)
	return &resp, nil
}

func (s *canalService) ListarSubcanales(ctx context.Context, canalID uint) ([]dto.SubcanalResponse, error) {
	subs, err := s.canales.ListSubcanales(ctx, canalID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SubcanalResponse, len(subs))
	for i := range subs {
		resp[i] = subcanalToResponse(&subs[i])
	}
	return resp, nil
}

// AsignarAdmin exige que el usuario exista y tenga rol admincanal antes de
// colgarlo del subcanal.
func (s *canalService) AsignarAdmin(ctx context.Context, subcanalID, adminID uint) error {
	sub, err := s.canales.FindSubcanalByID(ctx, subcanalID)
	if err != nil {
		return ErrNoEncontrado
	}
	admin, err := s.usuarios.FindByID(ctx, adminID)
	if err != nil || !admin.EsAdminCanal() {
		return ErrNoEncontrado
	}
	sub.AdminCanalID = &admin.ID
	return s.canales.UpdateSubcanal(ctx, sub)
}

func (s *canalService) CrearGasto(ctx context.Context, subcanalID uint, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	if _, err := s.canales.FindSubcanalByID(ctx, subcanalID); err != nil {
		return nil, ErrNoEncontrado
	}
	gasto := &model.Gasto{
		Nombre:     req.Nombre,
		Porcentaje: req.Porcentaje,
		SubcanalID: subcanalID,
		Activo:     true,
	}
	if err := s.gastos.Create(ctx, gasto); err != nil {
		return nil, err
	}
	return &dto.GastoResponse{
		ID: gasto.ID, Nombre: gasto.Nombre, Porcentaje: gasto.Porcentaje, Activo: gasto.Activo,
	}, nil
}

func (s *canalService) EliminarGasto(ctx context.Context, gastoID uint) error {
	return s.gastos.SoftDelete(ctx, gastoID)
}

func canalToResponse(c *model.Canal) dto.CanalResponse {
	resp := dto.CanalResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
	for i := range c.Subcanales {
		resp.Subcanales = append(resp.Subcanales, subcanalToResponse(&c.Subcanales[i]))
	}
	return resp
}

func subcanalToResponse(s *model.Subcanal) dto.SubcanalResponse {
	resp := dto.SubcanalResponse{
		ID:           s.ID,
		Nombre:       s.Nombre,
		CanalID:      s.CanalID,
		AdminCanalID: s.AdminCanalID,
		Activo:       s.Activo,
	}
	for _, g := range s.Gastos {
		resp.Gastos = append(resp.Gastos, dto.GastoResponse{
			ID: g.ID, Nombre: g.Nombre, Porcentaje: g.Porcentaje, Activo: g.Activo,
		})
	}
	return resp
}
