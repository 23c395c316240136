package repository

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/model"

	"gorm.io/gorm"
)

type DetalleRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleCompra) error
	FindByID(ctx context.Context, id uint) (*model.DetalleCompra, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.DetalleCompra, error)
	List(ctx context.Context, limit int) ([]model.DetalleCompra, error)
	PorCompra(ctx context.Context, compraID uint) ([]model.DetalleCompra, error)
	ListByCompraTx(tx *gorm.DB, compraID uint) ([]model.DetalleCompra, error)
	CountByCompraTx(tx *gorm.DB, compraID uint) (int64, error)
	CountByProductoTx(tx *gorm.DB, productoID uint) (int64, error)

	// UpdateTx escribe la linea solo si la version almacenada coincide;
	// devuelve false ante un conflicto de concurrencia.
	UpdateTx(tx *gorm.DB, d *model.DetalleCompra, expectedVersion int) (bool, error)

	DeleteTx(tx *gorm.DB, id uint) error
	DeleteByCompraTx(tx *gorm.DB, compraID uint) error
	DB() *gorm.DB
}

type detalleRepo struct{ db *gorm.DB }

func NewDetalleRepository(db *gorm.DB) DetalleRepository { return &detalleRepo{db: db} }

func (r *detalleRepo) DB() *gorm.DB { return r.db }

func (r *detalleRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *detalleRepo) CreateTx(ctx context.Context, tx *gorm.DB, d *model.DetalleCompra) error {
	return r.conn(tx).WithContext(ctx).Create(d).Error
}

func (r *detalleRepo) FindByID(ctx context.Context, id uint) (*model.DetalleCompra, error) {
	var d model.DetalleCompra
	err := r.db.WithContext(ctx).
		Preload("Compra").
		Preload("Producto").
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *detalleRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.DetalleCompra, error) {
	var d model.DetalleCompra
	if err := r.conn(tx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *detalleRepo) List(ctx context.Context, limit int) ([]model.DetalleCompra, error) {
	var detalles []model.DetalleCompra
	err := r.db.WithContext(ctx).
		Preload("Compra").
		Preload("Producto").
		Limit(limit).
		Find(&detalles).Error
	return detalles, err
}

func (r *detalleRepo) PorCompra(ctx context.Context, compraID uint) ([]model.DetalleCompra, error) {
	var detalles []model.DetalleCompra
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Where("compra_id = ?", compraID).
		Find(&detalles).Error
	return detalles, err
}

func (r *detalleRepo) ListByCompraTx(tx *gorm.DB, compraID uint) ([]model.DetalleCompra, error) {
	var detalles []model.DetalleCompra
	err := r.conn(tx).Where("compra_id = ?", compraID).Find(&detalles).Error
	return detalles, err
}

func (r *detalleRepo) CountByCompraTx(tx *gorm.DB, compraID uint) (int64, error) {
	var count int64
	err := r.conn(tx).Model(&model.DetalleCompra{}).Where("compra_id = ?", compraID).Count(&count).Error
	return count, err
}

func (r *detalleRepo) CountByProductoTx(tx *gorm.DB, productoID uint) (int64, error) {
	var count int64
	err := r.conn(tx).Model(&model.DetalleCompra{}).Where("producto_id = ?", productoID).Count(&count).Error
	return count, err
}

func (r *detalleRepo) UpdateTx(tx *gorm.DB, d *model.DetalleCompra, expectedVersion int) (bool, error) {
	res := r.conn(tx).Model(&model.DetalleCompra{}).
		Where("id = ? AND version = ?", d.ID, expectedVersion).
		Updates(map[string]interface{}{
			"compra_id":   d.CompraID,
			"producto_id": d.ProductoID,
			"cantidad":    d.Cantidad,
			"valor_bruto": d.ValorBruto,
			"version":     expectedVersion + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *detalleRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return r.conn(tx).Delete(&model.DetalleCompra{}, id).Error
}

func (r *detalleRepo) DeleteByCompraTx(tx *gorm.DB, compraID uint) error {
	return r.conn(tx).Where("compra_id = ?", compraID).Delete(&model.DetalleCompra{}).Error
}
