package service_test

import (
	"context"
	"testing"

	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func buildTenantSvc() (service.TenantService, *stubTenantRepo, *stubUserRepo) {
	tenantRepo := newStubTenantRepo()
	userRepo := newStubUserRepo()
	return service.NewTenantService(tenantRepo, userRepo), tenantRepo, userRepo
}

func TestCreateTenant_AdminWithOwner(t *testing.T) {
	svc, tenantRepo, userRepo := buildTenantSvc()

	id, err := svc.CreateTenant(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), dto.CreateTenantRequest{
		Name:          "Corner Shop",
		BusinessType:  strPtr("bakery"),
		OwnerEmail:    strPtr("owner@corner.shop"),
		OwnerPassword: strPtr("hunter22"),
	})
	require.NoError(t, err)

	tenant, err := tenantRepo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop", tenant.Name)
	assert.Equal(t, "active", tenant.Status)
	assert.Equal(t, "bakery", *tenant.BusinessType)
	assert.Nil(t, tenant.ResellerID)

	owner, err := userRepo.FindByEmail(context.Background(), "owner@corner.shop")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, owner.Role)
	require.NotNil(t, owner.TenantID)
	assert.Equal(t, id, *owner.TenantID)
}

func TestCreateTenant_DefaultsBusinessType(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()

	id, err := svc.CreateTenant(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), dto.CreateTenantRequest{
		Name: "No Type Shop",
	})
	require.NoError(t, err)

	tenant, _ := tenantRepo.FindByID(context.Background(), id)
	assert.Equal(t, "retail", *tenant.BusinessType)
}

func TestCreateTenant_ResellerBecomesOwner(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()
	resellerID := uuid.New()

	id, err := svc.CreateTenant(context.Background(), claimsFor(resellerID, model.RoleReseller, nil), dto.CreateTenantRequest{
		Name: "Reseller Client",
	})
	require.NoError(t, err)

	tenant, _ := tenantRepo.FindByID(context.Background(), id)
	require.NotNil(t, tenant.ResellerID)
	assert.Equal(t, resellerID, *tenant.ResellerID)
}

func TestCreateTenant_DuplicateOwnerEmailRollsBack(t *testing.T) {
	svc, _, userRepo := buildTenantSvc()
	require.NoError(t, userRepo.Create(context.Background(), &model.User{
		Email: "taken@example.com", Role: model.RoleUser,
	}))

	_, err := svc.CreateTenant(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), dto.CreateTenantRequest{
		Name:          "Doomed Shop",
		OwnerEmail:    strPtr("taken@example.com"),
		OwnerPassword: strPtr("hunter22"),
	})
	assert.ErrorIs(t, err, service.ErrEmailExists)
}

func TestListTenants_ResellerSeesOnlyOwned(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()
	mine := uuid.New()
	other := uuid.New()
	tenantRepo.tenants[uuid.New()] = &model.Tenant{ID: uuid.New(), Name: "Mine", ResellerID: &mine}
	tenantRepo.tenants[uuid.New()] = &model.Tenant{ID: uuid.New(), Name: "Theirs", ResellerID: &other}
	tenantRepo.tenants[uuid.New()] = &model.Tenant{ID: uuid.New(), Name: "Unowned"}

	tenants, err := svc.ListTenants(context.Background(), claimsFor(mine, model.RoleReseller, nil))
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Mine", tenants[0].Name)

	all, err := svc.ListTenants(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil))
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateTenant_ResellerCannotTouchForeignTenant(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()
	owner := uuid.New()
	intruder := uuid.New()
	tenantID := uuid.New()
	tenantRepo.tenants[tenantID] = &model.Tenant{ID: tenantID, Name: "Guarded", ResellerID: &owner}

	err := svc.UpdateTenant(context.Background(), claimsFor(intruder, model.RoleReseller, nil), tenantID, dto.UpdateTenantRequest{
		Name: strPtr("Hijacked"),
	})
	var denied *service.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "Guarded", tenantRepo.tenants[tenantID].Name)

	// The owning reseller can.
	err = svc.UpdateTenant(context.Background(), claimsFor(owner, model.RoleReseller, nil), tenantID, dto.UpdateTenantRequest{
		Name: strPtr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", tenantRepo.tenants[tenantID].Name)
}

func TestUpdateTenant_PartialPatchLeavesOtherFields(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()
	tenantID := uuid.New()
	tenantRepo.tenants[tenantID] = &model.Tenant{ID: tenantID, Name: "Stable", Status: "active"}

	err := svc.UpdateTenant(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), tenantID, dto.UpdateTenantRequest{
		Status: strPtr("suspended"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Stable", tenantRepo.tenants[tenantID].Name)
	assert.Equal(t, "suspended", tenantRepo.tenants[tenantID].Status)
}

func TestDeleteTenant_MissingIsNotFound(t *testing.T) {
	svc, _, _ := buildTenantSvc()
	err := svc.DeleteTenant(context.Background(), claimsFor(uuid.New(), model.RoleReseller, nil), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteTenant_DependentRowsConflict(t *testing.T) {
	svc, tenantRepo, _ := buildTenantSvc()
	tenantID := uuid.New()
	tenantRepo.tenants[tenantID] = &model.Tenant{ID: tenantID, Name: "Busy Shop"}
	tenantRepo.deleteErr = &pgconn.PgError{Code: "23503"}

	err := svc.DeleteTenant(context.Background(), claimsFor(uuid.New(), model.RoleAdmin, nil), tenantID)
	var conflict *service.ConflictError
	require.ErrorAs(t, err, &conflict)
}
