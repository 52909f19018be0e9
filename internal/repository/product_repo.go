package repository

import (
	"context"

	"saaspdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Product, error)
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Product, error)
	UpdateColumns(ctx context.Context, id, tenantID uuid.UUID, cols map[string]interface{}) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	LowStock(ctx context.Context, tenantID uuid.UUID, threshold, limit int) ([]model.Product, error)

	// Used inside the sale transaction; callers must pass the tx instance.
	// FindForUpdateTx takes a row lock so two concurrent sales cannot both
	// observe pre-decrement stock.
	FindForUpdateTx(tx *gorm.DB, id, tenantID uuid.UUID) (*model.Product, error)
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantity int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) UpdateColumns(ctx context.Context, id, tenantID uuid.UUID, cols map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).Updates(cols).Error
}

func (r *productRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("tenant_id = ?", tenantID).Count(&n).Error
	return n, err
}

func (r *productRepo) LowStock(ctx context.Context, tenantID uuid.UUID, threshold, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND stock_quantity <= ?", tenantID, threshold).
		Order("stock_quantity ASC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) FindForUpdateTx(tx *gorm.DB, id, tenantID uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error
}
