package service

import (
	"context"
	"errors"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"

	"gorm.io/gorm"
)

// ClienteService resuelve altas y consultas de clientes. El DNI es la clave
// de negocio: crear con un DNI existente actualiza los datos de contacto en
// lugar de duplicar la persona.
type ClienteService interface {
	CrearOActualizar(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error)
	BuscarPorDni(ctx context.Context, dni string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, canalID uint) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
}

type clienteService struct {
	clientes repository.ClienteRepository
}

func NewClienteService(clientes repository.ClienteRepository) ClienteService {
	return &clienteService{clientes: clientes}
}

func (s *clienteService) CrearOActualizar(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	existente, err := s.clientes.FindByDni(ctx, req.Dni)
	if err == nil {
		existente.Nombre = req.Nombre
		existente.Apellido = req.Apellido
		if req.Cuil != nil {
			existente.Cuil = req.Cuil
		}
		if req.Email != nil {
			existente.Email = req.Email
		}
		if req.Telefono != nil {
			existente.Telefono = req.Telefono
		}
		if req.Provincia != nil {
			existente.Provincia = req.Provincia
		}
		if req.CanalID != nil {
			existente.CanalID = req.CanalID
		}
		if err := s.clientes.Update(ctx, existente); err != nil {
			return nil, err
		}
		resp := clienteToResponse(existente)
		return &resp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cliente := &model.Cliente{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Dni:       req.Dni,
		Cuil:      req.Cuil,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Provincia: req.Provincia,
		CanalID:   req.CanalID,
	}
	if err := s.clientes.Create(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) BuscarPorDni(ctx context.Context, dni string) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByDni(ctx, dni)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context, canalID uint) ([]dto.ClienteResponse, error) {
	clientes, err := s.clientes.List(ctx, canalID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = clienteToResponse(&clientes[i])
	}
	return resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uint, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if req.Nombre != "" {
		cliente.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		cliente.Apellido = req.Apellido
	}
	if req.Cuil != nil {
		cliente.Cuil = req.Cuil
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Provincia != nil {
		cliente.Provincia = req.Provincia
	}
	if err := s.clientes.Update(ctx, cliente); err != nil {
		return nil, err
	}
	resp := clienteToResponse(cliente)
	return &resp, nil
}

func clienteToResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Dni:       c.Dni,
		Cuil:      c.Cuil,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Provincia: c.Provincia,
		CanalID:   c.CanalID,
	}
}
