package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// metricsCacheTTL bounds staleness between a sale commit and the dashboards;
// Invalidate usually collapses the window to zero.
const metricsCacheTTL = 30 * time.Second

const (
	lowStockThreshold = 10
	lowStockLimit     = 10
)

type MetricsService interface {
	Overview(ctx context.Context, claims *auth.Claims) (*dto.MetricsOverview, error)
	SalesTrend(ctx context.Context, claims *auth.Claims, days int) ([]dto.SalesTrendPoint, error)
	TopProducts(ctx context.Context, claims *auth.Claims, limit int) ([]dto.TopProduct, error)
	InventoryAlerts(ctx context.Context, claims *auth.Claims) ([]dto.InventoryAlert, error)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

type metricsService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	rdb       *redis.Client
}

// NewMetricsService builds the metrics reader. rdb may be nil, in which case
// every read goes straight to the database.
func NewMetricsService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	rdb *redis.Client,
) MetricsService {
	return &metricsService{sales: sales, products: products, customers: customers, rdb: rdb}
}

func metricsKey(tenantID uuid.UUID, name string) string {
	return fmt.Sprintf("metrics:%s:%s", tenantID, name)
}

// cached is the read-through path: serve the cached JSON when present, else
// compute, store with TTL, and serve. Cache failures degrade to a direct
// database read.
func cached[T any](ctx context.Context, rdb *redis.Client, key string, compute func() (T, error)) (T, error) {
	var zero T
	if rdb != nil {
		raw, err := rdb.Get(ctx, key).Result()
		if err == nil {
			var out T
			if jsonErr := json.Unmarshal([]byte(raw), &out); jsonErr == nil {
				return out, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("metrics cache read failed")
		}
	}

	out, err := compute()
	if err != nil {
		return zero, err
	}

	if rdb != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := rdb.Set(ctx, key, raw, metricsCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("metrics cache write failed")
			}
		}
	}
	return out, nil
}

func (s *metricsService) Overview(ctx context.Context, claims *auth.Claims) (*dto.MetricsOverview, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	return cached(ctx, s.rdb, metricsKey(tenantID, "overview"), func() (*dto.MetricsOverview, error) {
		revenue, count, err := s.sales.Totals(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		productsCount, err := s.products.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		customersCount, err := s.customers.CountByTenant(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		avg := decimal.Zero
		if count > 0 {
			avg = decimal.NewFromInt(revenue).DivRound(decimal.NewFromInt(count), 2)
		}
		return &dto.MetricsOverview{
			TotalRevenue:   revenue,
			SalesCount:     count,
			AverageTicket:  avg,
			ProductsCount:  productsCount,
			CustomersCount: customersCount,
		}, nil
	})
}

func (s *metricsService) SalesTrend(ctx context.Context, claims *auth.Claims, days int) ([]dto.SalesTrendPoint, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	if days <= 0 || days > 365 {
		days = 7
	}
	key := metricsKey(tenantID, fmt.Sprintf("trend:%d", days))
	return cached(ctx, s.rdb, key, func() ([]dto.SalesTrendPoint, error) {
		return s.sales.Trend(ctx, tenantID, days)
	})
}

func (s *metricsService) TopProducts(ctx context.Context, claims *auth.Claims, limit int) ([]dto.TopProduct, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	if limit <= 0 || limit > 50 {
		limit = 5
	}
	key := metricsKey(tenantID, fmt.Sprintf("top-products:%d", limit))
	return cached(ctx, s.rdb, key, func() ([]dto.TopProduct, error) {
		return s.sales.TopProducts(ctx, tenantID, limit)
	})
}

func (s *metricsService) InventoryAlerts(ctx context.Context, claims *auth.Claims) ([]dto.InventoryAlert, error) {
	decision := authz.Authorize(claims, authz.ActionStoreAccess, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	tenantID := *decision.Scope.TenantID

	return cached(ctx, s.rdb, metricsKey(tenantID, "inventory-alerts"), func() ([]dto.InventoryAlert, error) {
		low, err := s.products.LowStock(ctx, tenantID, lowStockThreshold, lowStockLimit)
		if err != nil {
			return nil, err
		}
		alerts := make([]dto.InventoryAlert, 0, len(low))
		for _, p := range low {
			alerts = append(alerts, dto.InventoryAlert{
				ProductID:    p.ID.String(),
				ProductName:  p.Name,
				CurrentStock: p.StockQuantity,
				MinStock:     lowStockThreshold,
			})
		}
		return alerts, nil
	})
}

// Invalidate drops every cached aggregate for the tenant. Best effort; on
// failure the TTL still bounds staleness.
func (s *metricsService) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	pattern := metricsKey(tenantID, "*")
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("metrics cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("metrics cache invalidation failed")
	}
}
