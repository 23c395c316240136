package repository

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/model"

	"gorm.io/gorm"
)

// ClienteRepository define el acceso a datos de clientes. Los servicios
// dependen de esta interfaz, no de GORM, para permitir stubs en tests.
//
// Los metodos *Tx aceptan el handle de la transaccion en curso para que las
// verificaciones de existencia y unicidad lean el mismo snapshot que luego
// se escribe; con tx nil operan sobre la conexion base.
type ClienteRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error
	FindByID(ctx context.Context, id uint) (*model.Cliente, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Cliente, error)
	ExistsCedulaTx(tx *gorm.DB, cedula string, excludeID uint) (bool, error)
	List(ctx context.Context, limit int) ([]model.Cliente, error)
	PorCedula(ctx context.Context, cedula string) ([]model.Cliente, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error
	DeleteTx(tx *gorm.DB, id uint) error

	// DB expone la conexion para que los servicios abran transacciones.
	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *clienteRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error {
	return r.conn(tx).WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uint) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.conn(tx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) ExistsCedulaTx(tx *gorm.DB, cedula string, excludeID uint) (bool, error) {
	var count int64
	q := r.conn(tx).Model(&model.Cliente{}).Where("cedula = ?", cedula)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *clienteRepo) List(ctx context.Context, limit int) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Order("fecha_registro DESC").Limit(limit).Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) PorCedula(ctx context.Context, cedula string) ([]model.Cliente, error) {
	var clientes []model.Cliente
	err := r.db.WithContext(ctx).Where("cedula = ?", cedula).Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) UpdateTx(ctx context.Context, tx *gorm.DB, c *model.Cliente) error {
	return r.conn(tx).WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return r.conn(tx).Delete(&model.Cliente{}, id).Error
}
