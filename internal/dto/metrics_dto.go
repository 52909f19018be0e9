package dto

import "github.com/shopspring/decimal"

// MetricsOverview backs GET /metrics/overview. Monetary sums stay in integer
// minor units; AverageTicket is the only derived ratio and uses an exact
// decimal instead of a float.
type MetricsOverview struct {
	TotalRevenue   int64           `json:"total_revenue"`
	SalesCount     int64           `json:"sales_count"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	ProductsCount  int64           `json:"products_count"`
	CustomersCount int64           `json:"customers_count"`
}

type SalesTrendPoint struct {
	Date       string `json:"date"`
	Revenue    int64  `json:"revenue"`
	SalesCount int64  `json:"sales_count"`
}

type TopProduct struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	QuantitySold int64  `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

type InventoryAlert struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}
