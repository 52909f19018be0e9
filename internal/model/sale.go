package model

import (
	"time"

	"github.com/google/uuid"
)

// SaleStatusCompleted is the only status written by the sale engine; failed
// attempts never persist a row.
const SaleStatusCompleted = "completed"

// Sale is the committed header of a sale transaction. TotalAmount equals the
// exact sum of its item subtotals at commit time, in integer minor units.
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TenantID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenant_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	CustomerID    *uuid.UUID `gorm:"type:uuid" json:"customer_id"`
	TotalAmount   int64      `gorm:"not null" json:"total_amount"`
	PaymentMethod string     `gorm:"not null" json:"payment_method"`
	Status        string     `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`

	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// SaleItem captures a price snapshot: UnitPrice is the product price at sale
// time and is immutable once written, independent of later price changes.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;index;not null" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Subtotal  int64     `gorm:"not null" json:"subtotal"`
}
