package repository

import (
	"context"

	"saaspdv/internal/model"

	"gorm.io/gorm"
)

type PlanRepository interface {
	Create(ctx context.Context, p *model.Plan) error
	List(ctx context.Context) ([]model.Plan, error)
}

type planRepo struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) PlanRepository { return &planRepo{db: db} }

func (r *planRepo) Create(ctx context.Context, p *model.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *planRepo) List(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.WithContext(ctx).Order("price ASC").Find(&plans).Error
	return plans, err
}
