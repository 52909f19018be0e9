package service_test

import (
	"context"
	"testing"

	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubProductRepo) {
	saleRepo := newStubSaleRepo()
	productRepo := newStubProductRepo()
	svc := service.NewSaleService(saleRepo, productRepo, nil, nil, nil)
	return svc, saleRepo, productRepo
}

func TestCreateSale_SnapshotsPriceAndDecrementsStock(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	tenantID := uuid.New()
	userID := uuid.New()
	coffee := productRepo.seed(tenantID, "Coffee 1kg", 1250, 10)
	sugar := productRepo.seed(tenantID, "Sugar 500g", 300, 4)

	sale, err := svc.CreateSale(context.Background(), claimsFor(userID, model.RoleUser, &tenantID), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: coffee.ID.String(), Quantity: 2},
			{ProductID: sugar.ID.String(), Quantity: 3},
		},
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// total = 2*1250 + 3*300 = 3400 minor units
	assert.Equal(t, int64(3400), sale.TotalAmount)
	assert.Equal(t, model.SaleStatusCompleted, sale.Status)
	assert.Equal(t, tenantID, sale.TenantID)
	assert.Equal(t, userID, sale.UserID)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, int64(1250), sale.Items[0].UnitPrice)
	assert.Equal(t, int64(2500), sale.Items[0].Subtotal)

	// Stock was decremented.
	assert.Equal(t, 8, coffee.StockQuantity)
	assert.Equal(t, 1, sugar.StockQuantity)

	// Sale persisted with its items.
	stored, err := saleRepo.FindByIDForTenant(context.Background(), sale.ID, tenantID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestCreateSale_PriceChangeDoesNotAffectPastSales(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	tenantID := uuid.New()
	p := productRepo.seed(tenantID, "Tea box", 800, 5)

	sale, err := svc.CreateSale(context.Background(), claimsFor(uuid.New(), model.RoleUser, &tenantID), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	p.Price = 999

	stored, err := saleRepo.FindByIDForTenant(context.Background(), sale.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), stored.Items[0].UnitPrice)
	assert.Equal(t, int64(800), stored.TotalAmount)
}

func TestCreateSale_InsufficientStockAbortsWholeSale(t *testing.T) {
	svc, saleRepo, productRepo := buildSaleSvc()
	tenantID := uuid.New()
	plenty := productRepo.seed(tenantID, "Bread", 200, 50)
	scarce := productRepo.seed(tenantID, "Cake", 1500, 1)

	_, err := svc.CreateSale(context.Background(), claimsFor(uuid.New(), model.RoleUser, &tenantID), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: plenty.ID.String(), Quantity: 2},
			{ProductID: scarce.ID.String(), Quantity: 3},
		},
		PaymentMethod: "cash",
	})

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, scarce.ID, stockErr.ProductID)

	// No sale row persisted.
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_UnknownProductFails(t *testing.T) {
	svc, saleRepo, _ := buildSaleSvc()
	tenantID := uuid.New()
	ghost := uuid.New()

	_, err := svc.CreateSale(context.Background(), claimsFor(uuid.New(), model.RoleUser, &tenantID), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: ghost.String(), Quantity: 1}},
		PaymentMethod: "cash",
	})

	var notFound *service.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ghost, notFound.ProductID)
	assert.Empty(t, saleRepo.sales)
}

func TestCreateSale_OtherTenantsProductIsInvisible(t *testing.T) {
	svc, _, productRepo := buildSaleSvc()
	tenantA := uuid.New()
	tenantB := uuid.New()
	foreign := productRepo.seed(tenantB, "Foreign product", 500, 10)

	_, err := svc.CreateSale(context.Background(), claimsFor(uuid.New(), model.RoleUser, &tenantA), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: foreign.ID.String(), Quantity: 1}},
		PaymentMethod: "cash",
	})

	var notFound *service.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	// Stock in the other tenant untouched.
	assert.Equal(t, 10, foreign.StockQuantity)
}

func TestCreateSale_RequiresTenantClaim(t *testing.T) {
	svc, _, _ := buildSaleSvc()

	_, err := svc.CreateSale(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		PaymentMethod: "cash",
	})

	var denied *service.DeniedError
	require.ErrorAs(t, err, &denied)
}

func TestListSales_ScopedToTenant(t *testing.T) {
	svc, saleRepo, _ := buildSaleSvc()
	tenantA := uuid.New()
	tenantB := uuid.New()
	saleRepo.sales[uuid.New()] = &model.Sale{ID: uuid.New(), TenantID: tenantA, TotalAmount: 100}
	saleRepo.sales[uuid.New()] = &model.Sale{ID: uuid.New(), TenantID: tenantB, TotalAmount: 200}

	sales, err := svc.ListSales(context.Background(), claimsFor(uuid.New(), model.RoleUser, &tenantA))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, tenantA, sales[0].TenantID)
}

func TestGetStats(t *testing.T) {
	svc, _, productRepo := buildSaleSvc()
	tenantID := uuid.New()
	p := productRepo.seed(tenantID, "Milk", 150, 100)
	claims := claimsFor(uuid.New(), model.RoleUser, &tenantID)

	for i := 0; i < 6; i++ {
		_, err := svc.CreateSale(context.Background(), claims, dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: p.ID.String(), Quantity: 2}},
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), stats.TotalRevenue)
	assert.Equal(t, int64(6), stats.SalesCount)
	// The dashboard shows at most the 5 most recent sales.
	assert.Len(t, stats.RecentSales, 5)
}
