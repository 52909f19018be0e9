package dto

import "saaspdv/internal/model"

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	CustomerID    *string           `json:"customer_id"    validate:"omitempty,uuid"`
}

// DashboardStats backs GET /sales/stats.
type DashboardStats struct {
	TotalRevenue int64        `json:"total_revenue"`
	SalesCount   int64        `json:"sales_count"`
	RecentSales  []model.Sale `json:"recent_sales"`
}
