package dto

// DetalleInput es el cuerpo del CRUD independiente de lineas de compra.
// A diferencia de DetalleCompraInput, aqui la linea nombra a su compra porque
// se opera fuera del agregador.
type DetalleInput struct {
	ID         uint `json:"id"`
	CompraID   uint `json:"compra_id"   validate:"required"`
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required"`
	Version    int  `json:"version"`
}
