package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is scoped strictly to one tenant. Price is in integer minor units.
// StockQuantity never goes negative: the sale engine rejects in full any sale
// that would drive it below zero.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID      uuid.UUID `gorm:"type:uuid;index;not null" json:"tenant_id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   *string   `json:"description"`
	Price         int64     `gorm:"not null" json:"price"`
	StockQuantity int       `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	SKU           *string   `gorm:"column:sku" json:"sku"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
