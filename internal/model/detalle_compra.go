package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleCompra es una linea de compra: una cantidad de un producto.
//
// ValorBruto es un snapshot de precio: Cantidad * Producto.ValorUnitario
// evaluado al momento de guardar la linea. Cambios posteriores al precio del
// producto no lo alteran; solo re-guardar la linea lo recalcula.
type DetalleCompra struct {
	ID         uint `gorm:"primaryKey"`
	CompraID   uint `gorm:"index;not null"`
	ProductoID uint `gorm:"index;not null"`
	Cantidad   int  `gorm:"not null"`
	ValorBruto decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Version    int             `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Compra   *Compra   `gorm:"foreignKey:CompraID"`
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}
