package repository

import (
	"context"

	"saaspdv/internal/dto"
	"saaspdv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx inserts the sale header plus its items inside the caller's
	// transaction (GORM cascades the Items association).
	CreateTx(tx *gorm.DB, s *model.Sale) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error)
	FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Sale, error)

	// Aggregates for the dashboard and metrics endpoints.
	Totals(ctx context.Context, tenantID uuid.UUID) (revenue, count int64, err error)
	Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Sale, error)
	Trend(ctx context.Context, tenantID uuid.UUID, days int) ([]dto.SalesTrendPoint, error)
	TopProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]dto.TopProduct, error)

	// DB exposes the underlying *gorm.DB so the sale engine can open
	// transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByIDForTenant(ctx context.Context, id, tenantID uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) Totals(ctx context.Context, tenantID uuid.UUID) (int64, int64, error) {
	var row struct {
		Revenue int64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).Scan(&row).Error
	return row.Revenue, row.Count, err
}

func (r *saleRepo) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Trend(ctx context.Context, tenantID uuid.UUID, days int) ([]dto.SalesTrendPoint, error) {
	var points []dto.SalesTrendPoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD')  AS date,
		       COALESCE(SUM(total_amount), 0)     AS revenue,
		       COUNT(*)                           AS sales_count
		FROM sales
		WHERE tenant_id = ?
		  AND created_at >= NOW() - make_interval(days => ?)
		GROUP BY TO_CHAR(created_at, 'YYYY-MM-DD')
		ORDER BY date ASC`, tenantID, days).Scan(&points).Error
	return points, err
}

func (r *saleRepo) TopProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]dto.TopProduct, error) {
	var rows []dto.TopProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT si.product_id      AS product_id,
		       p.name             AS product_name,
		       SUM(si.quantity)   AS quantity_sold,
		       SUM(si.subtotal)   AS revenue
		FROM sale_items si
		JOIN sales s    ON si.sale_id = s.id
		JOIN products p ON si.product_id = p.id
		WHERE s.tenant_id = ?
		GROUP BY si.product_id, p.name
		ORDER BY quantity_sold DESC
		LIMIT ?`, tenantID, limit).Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
