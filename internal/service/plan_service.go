package service

import (
	"context"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
)

type PlanService interface {
	CreatePlan(ctx context.Context, claims *auth.Claims, req dto.CreatePlanRequest) (uuid.UUID, error)
	ListPlans(ctx context.Context, claims *auth.Claims) ([]model.Plan, error)
}

type planService struct {
	plans repository.PlanRepository
}

func NewPlanService(plans repository.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func (s *planService) CreatePlan(ctx context.Context, claims *auth.Claims, req dto.CreatePlanRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionPlanManage, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	plan := &model.Plan{
		Name:     req.Name,
		Price:    req.Price,
		MaxUsers: req.MaxUsers,
		Features: req.Features,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return uuid.Nil, err
	}
	return plan.ID, nil
}

func (s *planService) ListPlans(ctx context.Context, claims *auth.Claims) ([]model.Plan, error) {
	decision := authz.Authorize(claims, authz.ActionPlanManage, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.plans.List(ctx)
}
