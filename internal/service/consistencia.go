package service

import (
	"errors"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/dto"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"gorm.io/gorm"
)

// ConsistencyGuard concentra las validaciones transversales de los caminos
// de escritura de compras y detalles. Las reglas se evaluan en orden fijo y
// la primera que falla gana:
//
//	1. payload vacio            -> MissingData
//	2. estado de identidad      -> AlreadyPersisted / NotExistent
//	3. unicidad de clave natural -> DuplicateCode
//	4. referencias foraneas      -> ReferenceNotFound
//	5. valores de dominio        -> InvalidValue
//
// Todos los chequeos reciben el handle de la transaccion en curso para leer
// el mismo snapshot sobre el que despues se escribe.
type ConsistencyGuard struct {
	clientes  repository.ClienteRepository
	productos repository.ProductoRepository
	compras   repository.CompraRepository
	detalles  repository.DetalleRepository
}

func NewConsistencyGuard(
	clientes repository.ClienteRepository,
	productos repository.ProductoRepository,
	compras repository.CompraRepository,
	detalles repository.DetalleRepository,
) *ConsistencyGuard {
	return &ConsistencyGuard{
		clientes:  clientes,
		productos: productos,
		compras:   compras,
		detalles:  detalles,
	}
}

// CompraParaCrear valida una compra nueva con sus detalles embebidos.
func (g *ConsistencyGuard) CompraParaCrear(tx *gorm.DB, in *dto.CompraInput) error {
	if in == nil || in.Codigo == "" || len(in.Detalles) == 0 {
		return apperr.New(apperr.MissingData, "falta informacion de la compra")
	}
	if in.ID != 0 {
		return apperr.New(apperr.AlreadyPersisted, "la compra ya fue guardada")
	}
	existe, err := g.compras.ExistsCodigoTx(tx, in.Codigo, 0)
	if err != nil {
		return traducirStorage(err)
	}
	if existe {
		return apperr.Newf(apperr.DuplicateCode, "ya existe una compra con codigo %q", in.Codigo)
	}
	return g.clienteResuelve(tx, in.ClienteID)
}

// CompraParaModificar valida la mutacion de una compra existente y devuelve
// la fila almacenada (con su version actual) para el chequeo optimista.
func (g *ConsistencyGuard) CompraParaModificar(tx *gorm.DB, in *dto.CompraInput) (*model.Compra, error) {
	if in == nil || in.Codigo == "" || len(in.Detalles) == 0 {
		return nil, apperr.New(apperr.MissingData, "falta informacion de la compra")
	}
	if in.ID == 0 {
		return nil, apperr.New(apperr.NotExistent, "la compra no fue guardada todavia")
	}
	if in.Version == 0 {
		return nil, apperr.New(apperr.MissingData, "falta el token de version de la compra")
	}
	existente, err := g.compras.FindByIDTx(tx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotExistent, "compra %d no existe", in.ID)
		}
		return nil, traducirStorage(err)
	}
	existe, err := g.compras.ExistsCodigoTx(tx, in.Codigo, in.ID)
	if err != nil {
		return nil, traducirStorage(err)
	}
	if existe {
		return nil, apperr.Newf(apperr.DuplicateCode, "ya existe una compra con codigo %q", in.Codigo)
	}
	if err := g.clienteResuelve(tx, in.ClienteID); err != nil {
		return nil, err
	}
	return existente, nil
}

// CompraParaBorrar rechaza el borrado mientras queden detalles que
// referencien la compra: el que llama debe borrarlos primero, nunca se
// borra en cascada.
func (g *ConsistencyGuard) CompraParaBorrar(tx *gorm.DB, id uint) (*model.Compra, error) {
	if id == 0 {
		return nil, apperr.New(apperr.NotExistent, "la compra no fue guardada todavia")
	}
	existente, err := g.compras.FindByIDTx(tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotExistent, "compra %d no existe", id)
		}
		return nil, traducirStorage(err)
	}
	count, err := g.detalles.CountByCompraTx(tx, id)
	if err != nil {
		return nil, traducirStorage(err)
	}
	if count > 0 {
		return nil, apperr.Newf(apperr.HasDependents, "la compra %d tiene %d detalles asociados", id, count)
	}
	return existente, nil
}

// DetalleParaCrear valida una linea creada por fuera del agregador.
func (g *ConsistencyGuard) DetalleParaCrear(tx *gorm.DB, in *dto.DetalleInput) error {
	if in == nil {
		return apperr.New(apperr.MissingData, "falta informacion del detalle")
	}
	if in.ID != 0 {
		return apperr.New(apperr.AlreadyPersisted, "el detalle ya fue guardado")
	}
	return g.referenciasDetalle(tx, in.CompraID, in.ProductoID)
}

// DetalleParaModificar valida la mutacion de una linea existente y devuelve
// la fila almacenada para el chequeo optimista y el recalculo de totales.
func (g *ConsistencyGuard) DetalleParaModificar(tx *gorm.DB, in *dto.DetalleInput) (*model.DetalleCompra, error) {
	if in == nil {
		return nil, apperr.New(apperr.MissingData, "falta informacion del detalle")
	}
	if in.ID == 0 {
		return nil, apperr.New(apperr.NotExistent, "el detalle no fue guardado todavia")
	}
	if in.Version == 0 {
		return nil, apperr.New(apperr.MissingData, "falta el token de version del detalle")
	}
	existente, err := g.detalles.FindByIDTx(tx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Newf(apperr.NotExistent, "detalle %d no existe", in.ID)
		}
		return nil, traducirStorage(err)
	}
	if err := g.referenciasDetalle(tx, in.CompraID, in.ProductoID); err != nil {
		return nil, err
	}
	return existente, nil
}

func (g *ConsistencyGuard) clienteResuelve(tx *gorm.DB, clienteID uint) error {
	if _, err := g.clientes.FindByIDTx(tx, clienteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.ReferenceNotFound, "cliente %d no existe", clienteID)
		}
		return traducirStorage(err)
	}
	return nil
}

func (g *ConsistencyGuard) referenciasDetalle(tx *gorm.DB, compraID, productoID uint) error {
	if _, err := g.compras.FindByIDTx(tx, compraID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.ReferenceNotFound, "compra %d no existe", compraID)
		}
		return traducirStorage(err)
	}
	if _, err := g.productos.FindByIDTx(tx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Newf(apperr.ReferenceNotFound, "producto %d no existe", productoID)
		}
		return traducirStorage(err)
	}
	return nil
}
