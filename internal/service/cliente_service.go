package service

import (
	"context"
	"time"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"gorm.io/gorm"
)

const maxClientesListado = 20

type ClienteService interface {
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	PorCedula(ctx context.Context, cedula string) ([]dto.ClienteResponse, error)
	Guardar(ctx context.Context, req *dto.ClienteInput) (*dto.ClienteResponse, error)
	Modificar(ctx context.Context, id uint, req *dto.ClienteInput) (*dto.ClienteResponse, error)
	Borrar(ctx context.Context, id uint) error
}

type clienteService struct {
	repo    repository.ClienteRepository
	compras repository.CompraRepository
}

func NewClienteService(repo repository.ClienteRepository, compras repository.CompraRepository) ClienteService {
	return &clienteService{repo: repo, compras: compras}
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, maxClientesListado)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return clientesToResponse(clientes), nil
}

func (s *clienteService) PorCedula(ctx context.Context, cedula string) ([]dto.ClienteResponse, error) {
	if cedula == "" {
		return nil, apperr.New(apperr.MissingData, "falta la cedula a buscar")
	}
	clientes, err := s.repo.PorCedula(ctx, cedula)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return clientesToResponse(clientes), nil
}

func (s *clienteService) Guardar(ctx context.Context, req *dto.ClienteInput) (*dto.ClienteResponse, error) {
	if req == nil || req.Cedula == "" {
		return nil, apperr.New(apperr.MissingData, "la cedula es obligatoria")
	}
	if req.ID != 0 {
		return nil, apperr.New(apperr.AlreadyPersisted, "el cliente ya fue guardado")
	}
	var creado model.Cliente
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existe, err := s.repo.ExistsCedulaTx(tx, req.Cedula, 0)
		if err != nil {
			return traducirStorage(err)
		}
		if existe {
			return apperr.Newf(apperr.DuplicateCode, "ya existe un cliente con cedula %q", req.Cedula)
		}
		creado = model.Cliente{
			Cedula:        req.Cedula,
			Nombre:        req.Nombre,
			Telefono:      req.Telefono,
			Correo:        req.Correo,
			FechaRegistro: time.Now(),
		}
		return traducirStorage(s.repo.CreateTx(ctx, tx, &creado))
	})
	if err != nil {
		return nil, err
	}
	return clienteToResponse(&creado), nil
}

func (s *clienteService) Modificar(ctx context.Context, id uint, req *dto.ClienteInput) (*dto.ClienteResponse, error) {
	if req == nil || req.Cedula == "" {
		return nil, apperr.New(apperr.MissingData, "la cedula es obligatoria")
	}
	if id == 0 {
		return nil, apperr.New(apperr.NotExistent, "el cliente no fue guardado todavia")
	}
	var actualizado *model.Cliente
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if notFound(err) {
				return apperr.Newf(apperr.NotExistent, "cliente %d no existe", id)
			}
			return traducirStorage(err)
		}
		existe, err := s.repo.ExistsCedulaTx(tx, req.Cedula, id)
		if err != nil {
			return traducirStorage(err)
		}
		if existe {
			return apperr.Newf(apperr.DuplicateCode, "ya existe un cliente con cedula %q", req.Cedula)
		}
		existente.Cedula = req.Cedula
		existente.Nombre = req.Nombre
		existente.Telefono = req.Telefono
		if req.Correo != nil {
			existente.Correo = req.Correo
		}
		if err := s.repo.UpdateTx(ctx, tx, existente); err != nil {
			return traducirStorage(err)
		}
		actualizado = existente
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clienteToResponse(actualizado), nil
}

// Borrar rechaza el borrado mientras existan compras que referencien al
// cliente, en linea con la politica de no borrar en cascada.
func (s *clienteService) Borrar(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.New(apperr.NotExistent, "el cliente no fue guardado todavia")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			if notFound(err) {
				return apperr.Newf(apperr.NotExistent, "cliente %d no existe", id)
			}
			return traducirStorage(err)
		}
		count, err := s.compras.CountByClienteTx(tx, id)
		if err != nil {
			return traducirStorage(err)
		}
		if count > 0 {
			return apperr.Newf(apperr.HasDependents, "el cliente %d tiene %d compras asociadas", id, count)
		}
		return traducirStorage(s.repo.DeleteTx(tx, id))
	})
}

func clientesToResponse(clientes []model.Cliente) []dto.ClienteResponse {
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID,
		Cedula:        c.Cedula,
		Nombre:        c.Nombre,
		Telefono:      c.Telefono,
		Correo:        c.Correo,
		FechaRegistro: c.FechaRegistro.Format(time.RFC3339),
	}
}
