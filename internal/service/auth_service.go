package service

import (
	"context"
	"errors"
	"time"

	"saaspdv/internal/auth"
	"saaspdv/internal/config"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
	cfg     *config.Config
}

func NewAuthService(users repository.UserRepository, tenants repository.TenantRepository, cfg *config.Config) AuthService {
	return &authService{users: users, tenants: tenants, cfg: cfg}
}

// Register creates a self-serve account with a fresh workspace tenant id.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (uuid.UUID, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	role := model.RoleUser
	if req.Role != nil {
		role = *req.Role
	}
	tenantID := uuid.New()

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

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	// Resolve business_type from the user's tenant, best effort, a missing
	// tenant row degrades to null rather than failing the login.
	var businessType *string
	if user.TenantID != nil {
		if tenant, err := s.tenants.FindByID(ctx, *user.TenantID); err == nil {
			businessType = tenant.BusinessType
		}
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := auth.IssueToken(user.ID, user.TenantID, user.Role, s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:        token,
		Role:         user.Role,
		BusinessType: businessType,
		Email:        user.Email,
	}, nil
}
