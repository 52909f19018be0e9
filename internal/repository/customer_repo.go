package repository

import (
	"context"

	"saaspdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error)
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Customer, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("tenant_id = ?", tenantID).Count(&n).Error
	return n, err
}
