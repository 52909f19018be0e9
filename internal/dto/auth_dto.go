package dto

// RegisterRequest is the self-serve signup payload for POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin reseller"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse mirrors what the front end stores after login.
type LoginResponse struct {
	Token        string  `json:"token"`
	Role         string  `json:"role"`
	BusinessType *string `json:"business_type"`
	Email        string  `json:"email"`
}
