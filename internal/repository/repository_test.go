package repository_test

import (
	"testing"
	"time"

	"github.com/Ayax911/ClothingStore/internal/infra"
	"github.com/Ayax911/ClothingStore/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// abrirDB levanta una base sqlite en memoria con el esquema migrado. Cada
// test recibe la suya; TranslateError deja las violaciones de unicidad como
// gorm.ErrDuplicatedKey igual que el driver de postgres.
func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))
	return db
}

func crearCliente(t *testing.T, db *gorm.DB, cedula string) *model.Cliente {
	t.Helper()
	c := &model.Cliente{Cedula: cedula, Nombre: "Cliente " + cedula, FechaRegistro: time.Now()}
	require.NoError(t, db.Create(c).Error)
	return c
}

func crearProducto(t *testing.T, db *gorm.DB, codigo, precio string) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Nombre:        "Producto " + codigo,
		Codigo:        codigo,
		ValorUnitario: decimal.RequireFromString(precio),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
