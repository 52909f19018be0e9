package service

import (
	"context"
	"errors"
	"fmt"

	"saaspdv/internal/auth"
	"saaspdv/internal/authz"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers the admin-only user and reseller management namespace.
type UserService interface {
	CreateUser(ctx context.Context, claims *auth.Claims, req dto.CreateUserRequest) (uuid.UUID, error)
	ListUsers(ctx context.Context, claims *auth.Claims) ([]model.User, error)
	UpdateUser(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, claims *auth.Claims, id uuid.UUID) error

	CreateReseller(ctx context.Context, claims *auth.Claims, req dto.CreateUserRequest) (uuid.UUID, error)
	ListResellers(ctx context.Context, claims *auth.Claims) ([]model.User, error)
}

type userService struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
}

func NewUserService(users repository.UserRepository, tenants repository.TenantRepository) UserService {
	return &userService{users: users, tenants: tenants}
}

// CreateUser attaches the new user to the supplied tenant; without one a
// fresh workspace tenant id is allocated. Role defaults to "user".
func (s *userService) CreateUser(ctx context.Context, claims *auth.Claims, req dto.CreateUserRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionUserManage, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	tenantID := uuid.New()
	if req.TenantID != nil {
		tid, err := uuid.Parse(*req.TenantID)
		if err != nil {
			return uuid.Nil, err
		}
		tenantID = tid
	}

	role := model.RoleUser
	if req.Role != nil {
		role = *req.Role
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		TenantID:     &tenantID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return uuid.Nil, ErrEmailExists
		}
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (s *userService) ListUsers(ctx context.Context, claims *auth.Claims) ([]model.User, error) {
	decision := authz.Authorize(claims, authz.ActionUserManage, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.users.List(ctx)
}

// UpdateUser applies partial semantics; a supplied password is re-hashed and
// a hashing failure aborts the whole update rather than degrading the stored
// hash.
func (s *userService) UpdateUser(ctx context.Context, claims *auth.Claims, id uuid.UUID, req dto.UpdateUserRequest) error {
	decision := authz.Authorize(claims, authz.ActionUserManage, authz.Target{})
	if !decision.Allowed {
		return Denied(decision.Reason)
	}

	cols := map[string]interface{}{}
	if req.Email != nil {
		cols["email"] = *req.Email
	}
	if req.Role != nil {
		cols["role"] = *req.Role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		cols["password_hash"] = hash
	}
	if len(cols) == 0 {
		return nil
	}

	if err := s.users.UpdateColumns(ctx, id, cols); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// DeleteUser refuses self-deletion for every role, and refuses to delete a
// reseller that still owns tenants.
func (s *userService) DeleteUser(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	decision := authz.Authorize(claims, authz.ActionUserDelete, authz.Target{UserID: &id})
	if !decision.Allowed {
		return Denied(decision.Reason)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if user.Role == model.RoleReseller {
		owned, err := s.tenants.CountByReseller(ctx, id)
		if err != nil {
			return err
		}
		if owned > 0 {
			return &ConflictError{
				Detail: fmt.Sprintf("user is a reseller that still owns %d tenant(s)", owned),
			}
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return &ConflictError{Detail: "user still has dependent rows"}
		}
		return err
	}
	return nil
}

// CreateReseller forces the reseller role and allocates a fresh workspace
// tenant id for the reseller's own identity.
func (s *userService) CreateReseller(ctx context.Context, claims *auth.Claims, req dto.CreateUserRequest) (uuid.UUID, error) {
	decision := authz.Authorize(claims, authz.ActionResellerManage, authz.Target{})
	if !decision.Allowed {
		return uuid.Nil, Denied(decision.Reason)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	workspaceID := uuid.New()
	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleReseller,
		TenantID:     &workspaceID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return uuid.Nil, ErrEmailExists
		}
		return uuid.Nil, err
	}
	return user.ID, nil
}

func (s *userService) ListResellers(ctx context.Context, claims *auth.Claims) ([]model.User, error) {
	decision := authz.Authorize(claims, authz.ActionResellerManage, authz.Target{})
	if !decision.Allowed {
		return nil, Denied(decision.Reason)
	}
	return s.users.ListByRole(ctx, model.RoleReseller)
}
