package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es una prenda del catalogo. El codigo es la clave natural y es
// unico a nivel de almacenamiento. ValorUnitario usa decimal(12,4) para que
// el snapshot de precio de una linea no pierda centavos con cantidades grandes.
type Producto struct {
	ID            uint            `gorm:"primaryKey"`
	Nombre        string          `gorm:"index;not null"`
	Material      string          `gorm:"size:100"`
	Codigo        string          `gorm:"uniqueIndex;not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
