package service

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxDetallesListado = 50

// DetalleService es el CRUD independiente de lineas de compra. Cada
// mutacion re-toma el snapshot de precio de la linea y recalcula el total
// derivado de la compra propietaria dentro de la misma transaccion, de modo
// que el invariante total == suma(valor_bruto) se sostiene tambien por este
// camino.
type DetalleService interface {
	Listar(ctx context.Context) ([]dto.DetalleCompraResponse, error)
	PorCompra(ctx context.Context, compraID uint) ([]dto.DetalleCompraResponse, error)
	Guardar(ctx context.Context, req *dto.DetalleInput) (*dto.DetalleCompraResponse, error)
	Modificar(ctx context.Context, id uint, req *dto.DetalleInput) (*dto.DetalleCompraResponse, error)
	Borrar(ctx context.Context, id uint) error
}

type detalleService struct {
	repo    repository.DetalleRepository
	compras repository.CompraRepository
	guard   *ConsistencyGuard
	precios PrecioResolver
}

func NewDetalleService(
	repo repository.DetalleRepository,
	compras repository.CompraRepository,
	guard *ConsistencyGuard,
	precios PrecioResolver,
) DetalleService {
	return &detalleService{repo: repo, compras: compras, guard: guard, precios: precios}
}

func (s *detalleService) Listar(ctx context.Context) ([]dto.DetalleCompraResponse, error) {
	detalles, err := s.repo.List(ctx, maxDetallesListado)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return detallesToResponse(detalles), nil
}

func (s *detalleService) PorCompra(ctx context.Context, compraID uint) ([]dto.DetalleCompraResponse, error) {
	if compraID == 0 {
		return nil, apperr.New(apperr.MissingData, "falta la compra a consultar")
	}
	detalles, err := s.repo.PorCompra(ctx, compraID)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return detallesToResponse(detalles), nil
}

func (s *detalleService) Guardar(ctx context.Context, req *dto.DetalleInput) (*dto.DetalleCompraResponse, error) {
	var (
		creado   model.DetalleCompra
		producto *model.Producto
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.guard.DetalleParaCrear(tx, req); err != nil {
			return err
		}
		p, bruto, err := s.precios.ResolverLinea(tx, req.ProductoID, req.Cantidad)
		if err != nil {
			return err
		}
		creado = model.DetalleCompra{
			CompraID:   req.CompraID,
			ProductoID: req.ProductoID,
			Cantidad:   req.Cantidad,
			ValorBruto: bruto,
			Version:    1,
		}
		if err := s.repo.CreateTx(ctx, tx, &creado); err != nil {
			return traducirStorage(err)
		}
		producto = p
		return s.recalcularTotal(tx, req.CompraID)
	})
	if err != nil {
		return nil, err
	}
	resp := detalleToResponse(&creado)
	resp.Producto = producto.Nombre
	return resp, nil
}

func (s *detalleService) Modificar(ctx context.Context, id uint, req *dto.DetalleInput) (*dto.DetalleCompraResponse, error) {
	if req == nil {
		return nil, apperr.New(apperr.MissingData, "falta informacion del detalle")
	}
	req.ID = id

	var (
		actualizado model.DetalleCompra
		producto    *model.Producto
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.guard.DetalleParaModificar(tx, req)
		if err != nil {
			return err
		}
		p, bruto, err := s.precios.ResolverLinea(tx, req.ProductoID, req.Cantidad)
		if err != nil {
			return err
		}
		actualizado = model.DetalleCompra{
			ID:         id,
			CompraID:   req.CompraID,
			ProductoID: req.ProductoID,
			Cantidad:   req.Cantidad,
			ValorBruto: bruto,
			Version:    req.Version + 1,
		}
		ok, err := s.repo.UpdateTx(tx, &actualizado, req.Version)
		if err != nil {
			return traducirStorage(err)
		}
		if !ok {
			return apperr.Newf(apperr.ConcurrencyConflict, "el detalle %d fue modificado por otro proceso", id)
		}
		producto = p
		// La linea pudo haberse movido de compra: recalcular ambas.
		if existente.CompraID != req.CompraID {
			if err := s.recalcularTotal(tx, existente.CompraID); err != nil {
				return err
			}
		}
		return s.recalcularTotal(tx, req.CompraID)
	})
	if err != nil {
		return nil, err
	}
	resp := detalleToResponse(&actualizado)
	resp.Producto = producto.Nombre
	return resp, nil
}

func (s *detalleService) Borrar(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.New(apperr.NotExistent, "el detalle no fue guardado todavia")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if notFound(err) {
				return apperr.Newf(apperr.NotExistent, "detalle %d no existe", id)
			}
			return traducirStorage(err)
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return traducirStorage(err)
		}
		return s.recalcularTotal(tx, existente.CompraID)
	})
}

// recalcularTotal vuelve a derivar el total de la compra a partir de sus
// detalles vigentes, como paso explicito tras cada mutacion del conjunto.
func (s *detalleService) recalcularTotal(tx *gorm.DB, compraID uint) error {
	detalles, err := s.repo.ListByCompraTx(tx, compraID)
	if err != nil {
		return traducirStorage(err)
	}
	total := decimal.Zero
	for _, d := range detalles {
		total = total.Add(d.ValorBruto)
	}
	return traducirStorage(s.compras.UpdateTotalTx(tx, compraID, total))
}

func detallesToResponse(detalles []model.DetalleCompra) []dto.DetalleCompraResponse {
	out := make([]dto.DetalleCompraResponse, 0, len(detalles))
	for i := range detalles {
		out = append(out, *detalleToResponse(&detalles[i]))
	}
	return out
}

func detalleToResponse(d *model.DetalleCompra) *dto.DetalleCompraResponse {
	nombre := ""
	if d.Producto != nil {
		nombre = d.Producto.Nombre
	}
	return &dto.DetalleCompraResponse{
		ID:         d.ID,
		CompraID:   d.CompraID,
		ProductoID: d.ProductoID,
		Producto:   nombre,
		Cantidad:   d.Cantidad,
		ValorBruto: d.ValorBruto,
		Version:    d.Version,
	}
}
