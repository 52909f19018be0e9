package dto

// ─── Tenants ─────────────────────────────────────────────────────────────────

type CreateTenantRequest struct {
	Name         string  `json:"name"          validate:"required"`
	PlanID       *string `json:"plan_id"       validate:"omitempty,uuid"`
	BusinessType *string `json:"business_type"`
	// When both owner fields are present, an initial shopkeeper user is
	// created inside the same transaction as the tenant.
	OwnerEmail    *string `json:"owner_email"    validate:"omitempty,email"`
	OwnerPassword *string `json:"owner_password" validate:"omitempty,min=6"`
}

// UpdateTenantRequest has partial-update semantics: absent fields are left
// untouched, never nulled.
type UpdateTenantRequest struct {
	Name         *string `json:"name"`
	PlanID       *string `json:"plan_id" validate:"omitempty,uuid"`
	Status       *string `json:"status"  validate:"omitempty,oneof=active suspended cancelled"`
	BusinessType *string `json:"business_type"`
	CustomFields *string `json:"custom_fields"`
}

// ─── Users / resellers ───────────────────────────────────────────────────────

type CreateUserRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin reseller super_admin"`
	// TenantID attaches the user to an existing tenant; when absent a fresh
	// workspace tenant id is allocated.
	TenantID *string `json:"tenant_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin reseller super_admin"`
}

// ─── Plans ───────────────────────────────────────────────────────────────────

type CreatePlanRequest struct {
	Name     string  `json:"name"      validate:"required"`
	Price    int64   `json:"price"     validate:"min=0"`
	MaxUsers int     `json:"max_users" validate:"min=1"`
	Features *string `json:"features"`
}

// CreatedResponse returns the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}
