package repository

import (
	"context"

	"github.com/Ayax911/ClothingStore/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompraRepository persiste cabeceras de compra. Las escrituras siempre
// llegan con el handle de la transaccion abierta por el servicio.
type CompraRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uint) (*model.Compra, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Compra, error)
	ExistsCodigoTx(tx *gorm.DB, codigo string, excludeID uint) (bool, error)
	List(ctx context.Context, limit int) ([]model.Compra, error)
	PorCodigo(ctx context.Context, codigo string) ([]model.Compra, error)

	// UpdateHeaderTx aplica el chequeo de concurrencia optimista: solo escribe
	// si la version almacenada sigue siendo expectedVersion, e incrementa la
	// version en la misma sentencia. Devuelve false si otra escritura gano.
	UpdateHeaderTx(tx *gorm.DB, c *model.Compra, expectedVersion int) (bool, error)

	// UpdateTotalTx reescribe el total derivado tras mutar el conjunto de
	// detalles por fuera del agregador (CRUD de detalles).
	UpdateTotalTx(tx *gorm.DB, compraID uint, total decimal.Decimal) error

	CountByClienteTx(tx *gorm.DB, clienteID uint) (int64, error)
	DeleteTx(tx *gorm.DB, id uint) error
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *compraRepo) CreateTx(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	// Inserta cabecera y detalles en la misma sentencia de asociacion.
	return r.conn(tx).WithContext(ctx).Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uint) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *compraRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Compra, error) {
	var c model.Compra
	if err := r.conn(tx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *compraRepo) ExistsCodigoTx(tx *gorm.DB, codigo string, excludeID uint) (bool, error) {
	var count int64
	q := r.conn(tx).Model(&model.Compra{}).Where("codigo = ?", codigo)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List devuelve las compras mas recientes primero, con cliente y detalles
// (cada detalle con su producto) cargados de forma eager. El contrato de
// lectura garantiza que ningun detalle llega sin su producto resuelto.
func (r *compraRepo) List(ctx context.Context, limit int) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		Order("fecha DESC").
		Limit(limit).
		Find(&compras).Error
	return compras, err
}

func (r *compraRepo) PorCodigo(ctx context.Context, codigo string) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		Where("codigo LIKE ?", "%"+codigo+"%").
		Order("fecha DESC").
		Find(&compras).Error
	return compras, err
}

func (r *compraRepo) UpdateHeaderTx(tx *gorm.DB, c *model.Compra, expectedVersion int) (bool, error) {
	res := r.conn(tx).Model(&model.Compra{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Updates(map[string]interface{}{
			"codigo":      c.Codigo,
			"fecha":       c.Fecha,
			"cliente_id":  c.ClienteID,
			"valor_total": c.ValorTotal,
			"version":     expectedVersion + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *compraRepo) UpdateTotalTx(tx *gorm.DB, compraID uint, total decimal.Decimal) error {
	return r.conn(tx).Model(&model.Compra{}).
		Where("id = ?", compraID).
		Updates(map[string]interface{}{
			"valor_total": total,
			"version":     gorm.Expr("version + 1"),
		}).Error
}

func (r *compraRepo) CountByClienteTx(tx *gorm.DB, clienteID uint) (int64, error) {
	var count int64
	err := r.conn(tx).Model(&model.Compra{}).Where("cliente_id = ?", clienteID).Count(&count).Error
	return count, err
}

func (r *compraRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return r.conn(tx).Delete(&model.Compra{}, id).Error
}
