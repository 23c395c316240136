package service

import (
	"errors"

	"github.com/Ayax911/ClothingStore/internal/apperr"
	"github.com/Ayax911/ClothingStore/internal/model"
	"github.com/Ayax911/ClothingStore/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PrecioResolver calcula el valor bruto de una linea a partir del precio
// vigente del producto: ValorBruto = Cantidad * ValorUnitario. Es una
// funcion pura sobre el estado del catalogo; el resultado queda congelado
// como snapshot en la linea al guardarla.
type PrecioResolver interface {
	ResolverLinea(tx *gorm.DB, productoID uint, cantidad int) (*model.Producto, decimal.Decimal, error)
}

type precioResolver struct {
	productos repository.ProductoRepository
}

func NewPrecioResolver(productos repository.ProductoRepository) PrecioResolver {
	return &precioResolver{productos: productos}
}

func (r *precioResolver) ResolverLinea(tx *gorm.DB, productoID uint, cantidad int) (*model.Producto, decimal.Decimal, error) {
	producto, err := r.productos.FindByIDTx(tx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, apperr.Newf(apperr.ReferenceNotFound, "producto %d no existe", productoID)
		}
		return nil, decimal.Zero, traducirStorage(err)
	}
	if cantidad <= 0 {
		return nil, decimal.Zero, apperr.Newf(apperr.InvalidValue, "cantidad %d invalida: debe ser un entero positivo", cantidad)
	}
	if producto.ValorUnitario.IsNegative() {
		return nil, decimal.Zero, apperr.Newf(apperr.InvalidValue, "producto %d tiene valor unitario negativo", productoID)
	}
	bruto := producto.ValorUnitario.Mul(decimal.NewFromInt(int64(cantidad)))
	return producto, bruto, nil
}
