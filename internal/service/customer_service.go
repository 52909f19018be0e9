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

type CustomerService interface {
	CreateCustomer(ctx context.Context, claims *auth.Claims, req dto.CreateCustomerRequest) (uuid.UUID, error)
	ListCustomers(ctx context.Context, claims *auth.Claims) ([]model.Customer, error)
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) CreateCustomer(ctx context.Context, claims *auth.Claims, req dto.CreateCustomerRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	customer := &model.Customer{
		TenantID: *decision.Scope.TenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

func (s *customerService) ListCustomers(ctx context.Context, claims *auth.Claims) ([]model.Customer, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.customers.ListByTenant(ctx, *decision.Scope.TenantID)
}
