package repository

import (
	"context"

	"saaspdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantRepository interface {
	CreateTx(tx *gorm.DB, t *model.Tenant) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	List(ctx context.Context) ([]model.Tenant, error)
	ListByReseller(ctx context.Context, resellerID uuid.UUID) ([]model.Tenant, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByReseller(ctx context.Context, resellerID uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type tenantRepo struct{ db *gorm.DB }

func NewTenantRepository(db *gorm.DB) TenantRepository { return &tenantRepo{db: db} }

func (r *tenantRepo) CreateTx(tx *gorm.DB, t *model.Tenant) error {
	return tx.Create(t).Error
}

func (r *tenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepo) List(ctx context.Context) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) ListByReseller(ctx context.Context, resellerID uuid.UUID) ([]model.Tenant, error) {
	var tenants []model.Tenant
	err := r.db.WithContext(ctx).Where("reseller_id = ?", resellerID).
		Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

func (r *tenantRepo) UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Tenant{}).Where("id = ?", id).Updates(cols).Error
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Tenant{}, "id = ?", id).Error
}

func (r *tenantRepo) CountByReseller(ctx context.Context, resellerID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Tenant{}).
		Where("reseller_id = ?", resellerID).Count(&n).Error
	return n, err
}

func (r *tenantRepo) DB() *gorm.DB { return r.db }
