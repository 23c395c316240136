package repository

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/model"

	"gorm.io/gorm"
)

type ProductoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	ExistsCodigoTx(tx *gorm.DB, codigo string, excludeID uint) (bool, error)
	List(ctx context.Context, limit int) ([]model.Producto, error)
	PorNombre(ctx context.Context, nombre string) ([]model.Producto, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error
	DeleteTx(tx *gorm.DB, id uint) error
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return r.conn(tx).WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	if err := r.conn(tx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) ExistsCodigoTx(tx *gorm.DB, codigo string, excludeID uint) (bool, error) {
	var count int64
	q := r.conn(tx).Model(&model.Producto{}).Where("codigo = ?", codigo)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productoRepo) List(ctx context.Context, limit int) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Limit(limit).Find(&productos).Error
	return productos, err
}

func (r *productoRepo) PorNombre(ctx context.Context, nombre string) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Where("nombre LIKE ?", "%"+nombre+"%").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return r.conn(tx).WithContext(ctx).Save(p).Error
}

func (r *productoRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return r.conn(tx).Delete(&model.Producto{}, id).Error
}
