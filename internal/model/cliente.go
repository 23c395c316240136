package model

import "time"

// Cliente es un comprador registrado. La cedula es la clave natural:
// obligatoria y unica a nivel de almacenamiento (ver DESIGN.md).
type Cliente struct {
	ID            uint   `gorm:"primaryKey"`
	Cedula        string `gorm:"uniqueIndex;not null"`
	Nombre        string `gorm:"size:100;not null"`
	Telefono      string `gorm:"size:100"`
	Correo        *string
	FechaRegistro time.Time `gorm:"not null"`

	// Compras referencia al cliente; nunca se cargan en cascada al borrar.
	Compras []Compra `gorm:"foreignKey:ClienteID"`
}
