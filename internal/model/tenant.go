package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated retail workspace (a shop) owning its own products,
// customers and sales. ResellerID references the reseller user that owns the
// tenant; nil means the tenant is managed directly by the platform.
type Tenant struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	PlanID       *uuid.UUID `gorm:"type:uuid;index" json:"plan_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	BusinessType *string    `json:"business_type"`
	ResellerID   *uuid.UUID `gorm:"type:uuid;index" json:"reseller_id"`
	// CustomFields is an opaque JSON blob owned by the front end.
	CustomFields *string   `gorm:"type:jsonb" json:"custom_fields"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
