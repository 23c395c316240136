package service

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"gorm.io/gorm"
)

const maxProductosListado = 50

type ProductoService interface {
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	PorNombre(ctx context.Context, nombre string) ([]dto.ProductoResponse, error)
	Guardar(ctx context.Context, req *dto.ProductoInput) (*dto.ProductoResponse, error)
	Modificar(ctx context.Context, id uint, req *dto.ProductoInput) (*dto.ProductoResponse, error)
	Borrar(ctx context.Context, id uint) error
}

type productoService struct {
	repo     repository.ProductoRepository
	detalles repository.DetalleRepository
}

func NewProductoService(repo repository.ProductoRepository, detalles repository.DetalleRepository) ProductoService {
	return &productoService{repo: repo, detalles: detalles}
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, maxProductosListado)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return productosToResponse(productos), nil
}

func (s *productoService) PorNombre(ctx context.Context, nombre string) ([]dto.ProductoResponse, error) {
	if nombre == "" {
		return nil, apperr.New(apperr.MissingData, "falta el nombre a buscar")
	}
	productos, err := s.repo.PorNombre(ctx, nombre)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return productosToResponse(productos), nil
}

func (s *productoService) Guardar(ctx context.Context, req *dto.ProductoInput) (*dto.ProductoResponse, error) {
	if req == nil || req.Codigo == "" || req.Nombre == "" {
		return nil, apperr.New(apperr.MissingData, "faltan datos del producto")
	}
	if req.ID != 0 {
		return nil, apperr.New(apperr.AlreadyPersisted, "el producto ya fue guardado")
	}
	if req.ValorUnitario.IsNegative() {
		return nil, apperr.New(apperr.InvalidValue, "el valor unitario no puede ser negativo")
	}
	var creado model.Producto
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existe, err := s.repo.ExistsCodigoTx(tx, req.Codigo, 0)
		if err != nil {
			return traducirStorage(err)
		}
		if existe {
			return apperr.Newf(apperr.DuplicateCode, "ya existe un producto con codigo %q", req.Codigo)
		}
		creado = model.Producto{
			Nombre:        req.Nombre,
			Material:      req.Material,
			Codigo:        req.Codigo,
			ValorUnitario: req.ValorUnitario,
		}
		return traducirStorage(s.repo.CreateTx(ctx, tx, &creado))
	})
	if err != nil {
		return nil, err
	}
	return productoToResponse(&creado), nil
}

// Modificar cambia nombre, material, codigo o valor unitario. El nuevo
// precio rige solo para lineas guardadas de ahi en adelante: los snapshots
// historicos no se tocan.
func (s *productoService) Modificar(ctx context.Context, id uint, req *dto.ProductoInput) (*dto.ProductoResponse, error) {
	if req == nil || req.Codigo == "" || req.Nombre == "" {
		return nil, apperr.New(apperr.MissingData, "faltan datos del producto")
	}
	if id == 0 {
		return nil, apperr.New(apperr.NotExistent, "el producto no fue guardado todavia")
	}
	if req.ValorUnitario.IsNegative() {
		return nil, apperr.New(apperr.InvalidValue, "el valor unitario no puede ser negativo")
	}
	var actualizado *model.Producto
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if notFound(err) {
				return apperr.Newf(apperr.NotExistent, "producto %d no existe", id)
			}
			return traducirStorage(err)
		}
		existe, err := s.repo.ExistsCodigoTx(tx, req.Codigo, id)
		if err != nil {
			return traducirStorage(err)
		}
		if existe {
			return apperr.Newf(apperr.DuplicateCode, "ya existe un producto con codigo %q", req.Codigo)
		}
		existente.Nombre = req.Nombre
		existente.Material = req.Material
		existente.Codigo = req.Codigo
		existente.ValorUnitario = req.ValorUnitario
		if err := s.repo.UpdateTx(ctx, tx, existente); err != nil {
			return traducirStorage(err)
		}
		actualizado = existente
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productoToResponse(actualizado), nil
}

// Borrar rechaza el borrado mientras existan detalles que referencien al
// producto: los snapshots historicos dependen de la fila.
func (s *productoService) Borrar(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.New(apperr.NotExistent, "el producto no fue guardado todavia")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			if notFound(err) {
				return apperr.Newf(apperr.NotExistent, "producto %d no existe", id)
			}
			return traducirStorage(err)
		}
		count, err := s.detalles.CountByProductoTx(tx, id)
		if err != nil {
			return traducirStorage(err)
		}
		if count > 0 {
			return apperr.Newf(apperr.HasDependents, "el producto %d aparece en %d detalles de compra", id, count)
		}
		return traducirStorage(s.repo.DeleteTx(tx, id))
	})
}

func productosToResponse(productos []model.Producto) []dto.ProductoResponse {
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Material:      p.Material,
		Codigo:        p.Codigo,
		ValorUnitario: p.ValorUnitario,
	}
}
