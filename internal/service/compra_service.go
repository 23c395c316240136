package service

import (
	"context"
	"time"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxComprasListado acota el listado general de compras.
const maxComprasListado = 20

// CompraService es el agregador de compras: crea y modifica una compra junto
// con sus detalles como una unica unidad consistente, y es el unico que
// escribe el total derivado.
type CompraService interface {
	Listar(ctx context.Context) ([]dto.CompraResponse, error)
	PorCodigo(ctx context.Context, codigo string) ([]dto.CompraResponse, error)
	Guardar(ctx context.Context, req *dto.CompraInput) (*dto.CompraResponse, error)
	Modificar(ctx context.Context, id uint, req *dto.CompraInput) (*dto.CompraResponse, error)
	Borrar(ctx context.Context, id uint) error
}

type compraService struct {
	repo     repository.CompraRepository
	detalles repository.DetalleRepository
	guard    *ConsistencyGuard
	precios  PrecioResolver
}

func NewCompraService(
	repo repository.CompraRepository,
	detalles repository.DetalleRepository,
	guard *ConsistencyGuard,
	precios PrecioResolver,
) CompraService {
	return &compraService{repo: repo, detalles: detalles, guard: guard, precios: precios}
}

// Listar devuelve las compras mas recientes primero, cada una con su cliente
// y sus detalles (cada detalle con su producto) ya resueltos.
func (s *compraService) Listar(ctx context.Context) ([]dto.CompraResponse, error) {
	compras, err := s.repo.List(ctx, maxComprasListado)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return comprasToResponse(compras), nil
}

func (s *compraService) PorCodigo(ctx context.Context, codigo string) ([]dto.CompraResponse, error) {
	if codigo == "" {
		return nil, apperr.New(apperr.MissingData, "falta el codigo a buscar")
	}
	compras, err := s.repo.PorCodigo(ctx, codigo)
	if err != nil {
		return nil, traducirStorage(err)
	}
	return comprasToResponse(compras), nil
}

// Guardar crea una compra nueva. Todo ocurre dentro de una transaccion:
// validaciones del guard, resolucion de precio de cada linea (cualquier
// linea que falle aborta la compra completa), suma del total y persistencia
// de cabecera + detalles. Una violacion de unicidad que recien aflore al
// confirmar se traduce a DuplicateCode igual que el pre-chequeo.
func (s *compraService) Guardar(ctx context.Context, req *dto.CompraInput) (*dto.CompraResponse, error) {
	var (
		creada    model.Compra
		productos []*model.Producto
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.guard.CompraParaCrear(tx, req); err != nil {
			return err
		}
		detalles, total, resueltos, err := s.resolverDetalles(tx, req.Detalles)
		if err != nil {
			return err
		}
		fecha := time.Now()
		if req.Fecha != nil {
			fecha = *req.Fecha
		}
		creada = model.Compra{
			Codigo:     req.Codigo,
			Fecha:      fecha,
			ClienteID:  req.ClienteID,
			ValorTotal: total,
			Version:    1,
			Detalles:   detalles,
		}
		productos = resueltos
		return traducirStorage(s.repo.CreateTx(ctx, tx, &creada))
	})
	if err != nil {
		return nil, err
	}
	resp := compraToResponse(&creada)
	for i, p := range productos {
		resp.Detalles[i].Producto = p.Nombre
	}
	return resp, nil
}

// Modificar re-valida, re-cotiza y re-suma exactamente igual que Guardar,
// reemplazando el conjunto de detalles. El UPDATE de la cabecera exige que
// la version leida siga vigente; si otro escritor gano, la operacion falla
// con ConcurrencyConflict y nunca se fusiona ni reintenta sola.
func (s *compraService) Modificar(ctx context.Context, id uint, req *dto.CompraInput) (*dto.CompraResponse, error) {
	if req == nil {
		return nil, apperr.New(apperr.MissingData, "falta informacion de la compra")
	}
	req.ID = id

	var (
		actualizada model.Compra
		productos   []*model.Producto
	)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		existente, err := s.guard.CompraParaModificar(tx, req)
		if err != nil {
			return err
		}
		detalles, total, resueltos, err := s.resolverDetalles(tx, req.Detalles)
		if err != nil {
			return err
		}
		fecha := existente.Fecha
		if req.Fecha != nil {
			fecha = *req.Fecha
		}
		actualizada = model.Compra{
			ID:         id,
			Codigo:     req.Codigo,
			Fecha:      fecha,
			ClienteID:  req.ClienteID,
			ValorTotal: total,
			Version:    req.Version + 1,
		}
		ok, err := s.repo.UpdateHeaderTx(tx, &actualizada, req.Version)
		if err != nil {
			return traducirStorage(err)
		}
		if !ok {
			return apperr.Newf(apperr.ConcurrencyConflict, "la compra %d fue modificada por otro proceso", id)
		}
		if err := s.detalles.DeleteByCompraTx(tx, id); err != nil {
			return traducirStorage(err)
		}
		for i := range detalles {
			detalles[i].CompraID = id
			if err := s.detalles.CreateTx(ctx, tx, &detalles[i]); err != nil {
				return traducirStorage(err)
			}
		}
		actualizada.Detalles = detalles
		productos = resueltos
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := compraToResponse(&actualizada)
	for i, p := range productos {
		resp.Detalles[i].Producto = p.Nombre
	}
	return resp, nil
}

// Borrar rechaza con HasDependents mientras existan detalles que referencien
// la compra; el borrado nunca es en cascada.
func (s *compraService) Borrar(ctx context.Context, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.guard.CompraParaBorrar(tx, id); err != nil {
			return err
		}
		return traducirStorage(s.repo.DeleteTx(tx, id))
	})
}

// resolverDetalles cotiza cada linea propuesta y acumula el total derivado.
// Cualquier fallo individual aborta el conjunto completo: nunca se persiste
// una compra cotizada a medias.
func (s *compraService) resolverDetalles(tx *gorm.DB, lineas []dto.DetalleCompraInput) ([]model.DetalleCompra, decimal.Decimal, []*model.Producto, error) {
	detalles := make([]model.DetalleCompra, 0, len(lineas))
	productos := make([]*model.Producto, 0, len(lineas))
	total := decimal.Zero
	for _, linea := range lineas {
		producto, bruto, err := s.precios.ResolverLinea(tx, linea.ProductoID, linea.Cantidad)
		if err != nil {
			return nil, decimal.Zero, nil, err
		}
		detalles = append(detalles, model.DetalleCompra{
			ProductoID: linea.ProductoID,
			Cantidad:   linea.Cantidad,
			ValorBruto: bruto,
			Version:    1,
		})
		productos = append(productos, producto)
		total = total.Add(bruto)
	}
	return detalles, total, productos, nil
}

// ─── Mapeo a DTOs ────────────────────────────────────────────────────────────

func comprasToResponse(compras []model.Compra) []dto.CompraResponse {
	out := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		out = append(out, *compraToResponse(&compras[i]))
	}
	return out
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	detalles := make([]dto.DetalleCompraResponse, 0, len(c.Detalles))
	for _, d := range c.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleCompraResponse{
			ID:         d.ID,
			CompraID:   d.CompraID,
			ProductoID: d.ProductoID,
			Producto:   nombre,
			Cantidad:   d.Cantidad,
			ValorBruto: d.ValorBruto,
			Version:    d.Version,
		})
	}
	resp := &dto.CompraResponse{
		ID:         c.ID,
		Codigo:     c.Codigo,
		Fecha:      c.Fecha.Format(time.RFC3339),
		ClienteID:  c.ClienteID,
		ValorTotal: c.ValorTotal,
		Version:    c.Version,
		Detalles:   detalles,
	}
	if c.Cliente != nil {
		resp.Cliente = clienteToResponse(c.Cliente)
	}
	return resp
}
