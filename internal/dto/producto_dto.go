package dto

import "github.com/shopspring/decimal"

type ProductoInput struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"         validate:"required"`
	Material      string          `json:"material"       validate:"max=100"`
	Codigo        string          `json:"codigo"         validate:"required"`
	ValorUnitario decimal.Decimal `json:"valor_unitario" validate:"min=0"`
}

type ProductoResponse struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Material      string          `json:"material"`
	Codigo        string          `json:"codigo"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

// ConsultaPrecioResponse es la respuesta del endpoint publico de consulta
// de precio por codigo; se cachea en Redis.
type ConsultaPrecioResponse struct {
	Nombre        string          `json:"nombre"`
	Material      string          `json:"material"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}
