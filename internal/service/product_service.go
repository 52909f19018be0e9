package service

import (
	"context"
	"errors"
	"time"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, claims *auth.Claims, req dto.CreateProductRequest) (uuid.UUID, error)
	ListProducts(ctx context.Context, claims *auth.Claims) ([]model.Product, error)
	UpdateProduct(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateProductRequest) error
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) CreateProduct(ctx context.Context, claims *auth.Claims, req dto.CreateProductRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	product := &model.Product{
		TenantID:      *decision.Scope.TenantID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		SKU:           req.SKU,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (s *productService) ListProducts(ctx context.Context, claims *auth.Claims) ([]model.Product, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.products.ListByTenant(ctx, *decision.Scope.TenantID)
}

// UpdateProduct applies partial semantics scoped to the caller's tenant; an
// id belonging to another tenant reads as not found.
func (s *productService) UpdateProduct(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateProductRequest) error {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	if _, err := s.products.FindByIDForTenant(ctx, id, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	cols := map[string]interface{}{}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.Description != nil {
		cols["description"] = *req.Description
	}
	if req.Price != nil {
		cols["price"] = *req.Price
	}
	if req.StockQuantity != nil {
		cols["stock_quantity"] = *req.StockQuantity
	}
	if req.SKU != nil {
		cols["sku"] = *req.SKU
	}
	if len(cols) == 0 {
		return nil
	}
	cols["updated_at"] = time.Now()

	return s.products.UpdateColumns(ctx, id, tenantID, cols)
}
