package infra

import (
	"github.com/Ayax911/ClothingStore/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la conexion GORM contra Postgres y migra el esquema.
// TranslateError esta activo para que una violacion de unicidad que aflore
// recien al confirmar llegue como gorm.ErrDuplicatedKey y los servicios la
// clasifiquen como DuplicateCode.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations crea o actualiza las tablas. Los indices unicos sobre las
// claves naturales (codigo de compra, codigo de producto, cedula) son el
// respaldo a nivel de almacenamiento de los pre-chequeos de la aplicacion.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cliente{},
		&model.Producto{},
		&model.Compra{},
		&model.DetalleCompra{},
		&model.Usuario{},
	)
}
