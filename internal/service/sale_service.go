package service

import (
	"context"
	"errors"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MetricsInvalidator drops cached aggregates for a tenant after a write that
// changes them.
type MetricsInvalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// ReceiptDispatcher queues asynchronous receipt delivery for a committed sale.
type ReceiptDispatcher interface {
	EnqueueReceipt(ctx context.Context, saleID, tenantID uuid.UUID) error
}

// ReceiptRenderer renders a committed sale into a PDF document.
type ReceiptRenderer interface {
	Render(sale *model.Sale, productNames map[uuid.UUID]string) ([]byte, error)
}

// recentSalesLimit caps the RecentSales slice on the stats dashboard.
const recentSalesLimit = 5

type SaleService interface {
	CreateSale(ctx context.Context, claims *auth.Claims, req dto.CreateSaleRequest) (*model.Sale, error)
	ListSales(ctx context.Context, claims *auth.Claims) ([]model.Sale, error)
	GetStats(ctx context.Context, claims *auth.Claims) (*dto.DashboardStats, error)
	GenerateReceipt(ctx context.Context, claims *auth.Claims, saleID uuid.UUID) ([]byte, error)
}

type saleService struct {
	sales      repository.SaleRepository
	products   repository.ProductRepository
	metrics    MetricsInvalidator
	dispatcher ReceiptDispatcher
	renderer   ReceiptRenderer
}

// NewSaleService builds the sale engine. metrics, dispatcher and renderer may
// be nil; the corresponding side effects are skipped.
func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	metrics MetricsInvalidator,
	dispatcher ReceiptDispatcher,
	renderer ReceiptRenderer,
) SaleService {
	return &saleService{
		sales:      sales,
		products:   products,
		metrics:    metrics,
		dispatcher: dispatcher,
		renderer:   renderer,
	}
}

// CreateSale commits a sale atomically: every item's product row is locked
// before any stock check, the unit price is snapshotted from the product at
// commit time, and stock decrements plus the sale insert either all persist
// or none do. Concurrent sales on the same product serialize on the row lock,
// so stock can never go negative.
func (s *saleService) CreateSale(ctx context.Context, claims *auth.Claims, req dto.CreateSaleRequest) (*model.Sale, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	userID, err := claims.UserID()
	if err != nil {
		return nil, Denied(authz.ReasonForbidden)
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &cid
	}

	sale := &model.Sale{
		TenantID:      tenantID,
		UserID:        userID,
		CustomerID:    customerID,
		PaymentMethod: req.PaymentMethod,
		Status:        model.SaleStatusCompleted,
	}

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		var total int64
		items := make([]model.SaleItem, 0, len(req.Items))

		for _, item := range req.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return err
			}

			product, err := s.products.FindForUpdateTx(tx, productID, tenantID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: productID}
				}
				return err
			}
			if product.StockQuantity < item.Quantity {
				return &InsufficientStockError{ProductID: productID}
			}

			subtotal := product.Price * int64(item.Quantity)
			total += subtotal
			items = append(items, model.SaleItem{
				ProductID: productID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})

			if err := s.products.DecrementStockTx(tx, productID, item.Quantity); err != nil {
				return err
			}
		}

		sale.TotalAmount = total
		sale.Items = items
		return s.sales.CreateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.metrics != nil {
		s.metrics.Invalidate(ctx, tenantID)
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueReceipt(ctx, sale.ID, tenantID); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).
				Msg("could not enqueue receipt delivery")
		}
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, claims *auth.Claims) ([]model.Sale, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.sales.ListByTenant(ctx, *decision.Scope.TenantID)
}

func (s *saleService) GetStats(ctx context.Context, claims *auth.Claims) (*dto.DashboardStats, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	revenue, count, err := s.sales.Totals(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	recent, err := s.sales.Recent(ctx, tenantID, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStats{
		TotalRevenue: revenue,
		SalesCount:   count,
		RecentSales:  recent,
	}, nil
}

// GenerateReceipt renders the receipt PDF for a committed sale in the
// caller's tenant.
func (s *saleService) GenerateReceipt(ctx context.Context, claims *auth.Claims, saleID uuid.UUID) ([]byte, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	sale, err := s.sales.FindByIDForTenant(ctx, saleID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(sale.Items))
	for _, item := range sale.Items {
		product, err := s.products.FindByIDForTenant(ctx, item.ProductID, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		names[item.ProductID] = product.Name
	}

	return s.renderer.Render(sale, names)
}
