package dto

type CreateCustomerRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}
