package service

import (
	"context"
	"errors"
	"time"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantService interface {
	CreateTenant(ctx context.Context, claims *auth.Claims, req dto.CreateTenantRequest) (uuid.UUID, error)
	ListTenants(ctx context.Context, claims *auth.Claims) ([]model.Tenant, error)
	UpdateTenant(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateTenantRequest) error
	DeleteTenant(ctx context.Context, claims *auth.Claims, id uuid.UUID) error
}

type tenantService struct {
	tenants repository.TenantRepository
	users   repository.UserRepository
}

func NewTenantService(tenants repository.TenantRepository, users repository.UserRepository) TenantService {
	return &tenantService{tenants: tenants, users: users}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CreateTenant inserts the tenant row and, when owner credentials are
// supplied, a linked shopkeeper user, both inside one transaction so either
// both rows persist or neither does. A reseller caller becomes the owner of
// the new tenant regardless of the request payload.
func (s *tenantService) CreateTenant(ctx context.Context, claims *auth.Claims, req dto.CreateTenantRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionTenantCreate, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	var planID *uuid.UUID
	if req.PlanID != nil {
		pid, err := uuid.Parse(*req.PlanID)
		if err != nil {
			return uuid.Nil, err
		}
		planID = &pid
	}

	businessType := "retail"
	if req.BusinessType != nil {
		businessType = *req.BusinessType
	}

	// Hash before opening the transaction; a hashing failure aborts the
	// whole operation.
	var ownerHash string
	createOwner := req.OwnerEmail != nil && req.OwnerPassword != nil
	if createOwner {
		hash, err := auth.HashPassword(*req.OwnerPassword)
		if err != nil {
			return uuid.Nil, err
		}
		ownerHash = hash
	}

	tenant := &model.Tenant{
		ID:           uuid.New(),
		Name:         req.Name,
		PlanID:       planID,
		Status:       "active",
		BusinessType: &businessType,
		ResellerID:   decision.Scope.ResellerID,
	}

	txErr := runTx(ctx, s.tenants.DB(), func(tx *gorm.DB) error {
		if err := s.tenants.CreateTx(tx, tenant); err != nil {
			return err
		}
		if createOwner {
			owner := &model.User{
				Email:        *req.OwnerEmail,
				PasswordHash: ownerHash,
				Role:         model.RoleUser,
				TenantID:     &tenant.ID,
			}
			if err := s.users.CreateTx(tx, owner); err != nil {
				if repository.IsUniqueViolation(err) {
					return ErrEmailExists
				}
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return uuid.Nil, txErr
	}
	return tenant.ID, nil
}

func (s *tenantService) ListTenants(ctx context.Context, claims *auth.Claims) ([]model.Tenant, error) {
	decision := authz.Authorize(claims, authz.ActionTenantList, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	if decision.Scope.All {
		return s.tenants.List(ctx)
	}
	return s.tenants.ListByReseller(ctx, *decision.Scope.ResellerID)
}

// UpdateTenant applies only the supplied fields and always refreshes
// updated_at. Resellers may only touch tenants they own; the ownership lookup
// failing technically is a conservative deny, never an allow.
func (s *tenantService) UpdateTenant(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateTenantRequest) error {
	if err := s.authorizeOwnership(ctx, claims, authz.ActionTenantUpdate, id); err != nil {
		return err
	}

	cols := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		cols["name"] = *req.Name
	}
	if req.PlanID != nil {
		pid, err := uuid.Parse(*req.PlanID)
		if err != nil {
			return err
		}
		cols["plan_id"] = pid
	}
	if req.Status != nil {
		cols["status"] = *req.Status
	}
	if req.BusinessType != nil {
		cols["business_type"] = *req.BusinessType
	}
	if req.CustomFields != nil {
		cols["custom_fields"] = *req.CustomFields
	}

	return s.tenants.UpdateColumns(ctx, id, cols)
}

// DeleteTenant removes the tenant row. Dependents are not cascaded; when the
// store's referential constraints block the delete the caller gets a conflict.
func (s *tenantService) DeleteTenant(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	if err := s.authorizeOwnership(ctx, claims, authz.ActionTenantDelete, id); err != nil {
		return err
	}
	if err := s.tenants.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return &ConflictError{Detail: "tenant still has dependent products or sales"}
		}
		return err
	}
	return nil
}

// authorizeOwnership evaluates a tenant mutation, feeding the policy the
// target tenant's owner when the caller is a reseller (point lookup,
// fail-closed on store errors).
func (s *tenantService) authorizeOwnership(ctx context.Context, claims *auth.Claims, action authz.Action, id uuid.UUID) error {
	target := authz.Target{}
	if claims.Role == model.RoleReseller {
		tenant, err := s.tenants.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return Denied(authz.ReasonNotOwner)
		}
		target.TenantResellerID = tenant.ResellerID
	}
	decision := authz.Authorize(claims, action, target)
	if !decision.Allowed {
		return Denied(decision.Reason)
	}
	return nil
}
