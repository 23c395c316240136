package dto

// ClienteInput se usa tanto para crear (ID debe venir en cero) como para
// modificar (ID obligatorio distinto de cero).
type ClienteInput struct {
	ID       uint    `json:"id"`
	Cedula   string  `json:"cedula"   validate:"required"`
	Nombre   string  `json:"nombre"   validate:"required,max=100"`
	Telefono string  `json:"telefono" validate:"max=100"`
	Correo   *string `json:"correo"   validate:"omitempty,email"`
}

type ClienteResponse struct {
	ID            uint    `json:"id"`
	Cedula        string  `json:"cedula"`
	Nombre        string  `json:"nombre"`
	Telefono      string  `json:"telefono"`
	Correo        *string `json:"correo,omitempty"`
	FechaRegistro string  `json:"fecha_registro"`
}
