package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra es la cabecera de una transaccion de venta.
//
// ValorTotal es un campo derivado: siempre igual a la suma de los ValorBruto
// de sus detalles. Solo el agregador de compras lo escribe; nunca llega desde
// el cliente HTTP.
//
// Version es el token de concurrencia optimista: se lee junto con la fila y
// debe coincidir en el UPDATE o la modificacion falla.
type Compra struct {
	ID         uint      `gorm:"primaryKey"`
	Codigo     string    `gorm:"uniqueIndex;not null"`
	Fecha      time.Time `gorm:"index;not null"`
	ClienteID  uint      `gorm:"index;not null"`
	ValorTotal decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Version    int             `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Cliente  *Cliente        `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleCompra `gorm:"foreignKey:CompraID"`
}
