package dto

type CreateProductRequest struct {
	Name          string  `json:"name"           validate:"required"`
	Description   *string `json:"description"`
	Price         int64   `json:"price"          validate:"min=0"`
	StockQuantity int     `json:"stock_quantity" validate:"min=0"`
	SKU           *string `json:"sku"`
}

// UpdateProductRequest has partial-update semantics.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"          validate:"omitempty,min=0"`
	StockQuantity *int    `json:"stock_quantity" validate:"omitempty,min=0"`
	SKU           *string `json:"sku"`
}
