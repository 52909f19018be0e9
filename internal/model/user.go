package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values carried in the users.role column and in token claims.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleReseller   = "reseller"
	RoleUser       = "user"
)

// User stores platform and tenant-level identities.
// A user with a nil TenantID is a platform-level actor (e.g. super_admin).
// Resellers carry a private workspace tenant id even though they are not
// shopkeepers; their owned retail tenants reference them via Tenant.ResellerID.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	TenantID     *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
