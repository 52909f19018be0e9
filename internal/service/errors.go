package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"saaspdv/internal/authz"
)

// Sentinel errors shared across services. Handlers translate these into HTTP
// statuses; the taxonomy is: auth → 401, authz → 403, conflict → 409,
// not found → 404, sale failures → 400, everything else → 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
)

// DeniedError carries the authorization deny reason up to the handler.
type DeniedError struct {
	Reason authz.DenyReason
}

func (e *DeniedError) Error() string {
	switch e.Reason {
	case authz.ReasonNotOwner:
		return "not owner of this tenant"
	case authz.ReasonNoTenant:
		return "tenant id missing"
	case authz.ReasonCannotDeleteSelf:
		return "cannot delete your own user"
	default:
		return "not authorized"
	}
}

// Denied wraps a deny reason as an error.
func Denied(reason authz.DenyReason) error {
	return &DeniedError{Reason: reason}
}

// ConflictError reports an operation blocked by existing state (dependent
// rows, owned tenants). Detail names the blocking relationship.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

// ProductNotFoundError aborts a sale whose item references a product that
// does not exist in the caller's tenant.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError aborts a sale that would drive stock negative.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}
