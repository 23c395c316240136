package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Requests ────────────────────────────────────────────────────────────────

// DetalleCompraInput es una linea propuesta dentro de una compra. ValorBruto
// nunca viene del cliente: lo calcula el resolutor de precios al guardar.
type DetalleCompraInput struct {
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required"`
}

// CompraInput se envia completo en crear (ID == 0) y modificar (ID != 0,
// Version obligatoria con el valor leido).
type CompraInput struct {
	ID        uint                 `json:"id"`
	Codigo    string               `json:"codigo"     validate:"required"`
	Fecha     *time.Time           `json:"fecha"`
	ClienteID uint                 `json:"cliente_id" validate:"required"`
	Version   int                  `json:"version"`
	Detalles  []DetalleCompraInput `json:"detalles"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type DetalleCompraResponse struct {
	ID         uint            `json:"id"`
	CompraID   uint            `json:"compra_id"`
	ProductoID uint            `json:"producto_id"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	ValorBruto decimal.Decimal `json:"valor_bruto"`
	Version    int             `json:"version"`
}

type CompraResponse struct {
	ID         uint                    `json:"id"`
	Codigo     string                  `json:"codigo"`
	Fecha      string                  `json:"fecha"`
	ClienteID  uint                    `json:"cliente_id"`
	Cliente    *ClienteResponse        `json:"cliente,omitempty"`
	ValorTotal decimal.Decimal         `json:"valor_total"`
	Version    int                     `json:"version"`
	Detalles   []DetalleCompraResponse `json:"detalles"`
}
