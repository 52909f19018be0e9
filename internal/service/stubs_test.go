package service_test

// In-memory repository stubs shared by the service unit tests. The sale
// engine's transaction helper calls fn(nil) when DB() returns nil, so every
// Tx method here tolerates a nil *gorm.DB.

import (
	"context"
	"strings"

	"saaspdv/internal/auth"
	"saaspdv/internal/dto"
	"saaspdv/internal/model"
	"saaspdv/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func claimsFor(sub uuid.UUID, role string, tenantID *uuid.UUID) *auth.Claims {
	return &auth.Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: sub.String(),
		},
	}
}

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users   map[uuid.UUID]*model.User
	deleted []uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) insert(u *model.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uni_users_email"}
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error { return r.insert(u) }
func (r *stubUserRepo) CreateTx(_ *gorm.DB, u *model.User) error      { return r.insert(u) }

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateColumns(_ context.Context, id uuid.UUID, cols map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cols["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := cols["role"]; ok {
		u.Role = v.(string)
	}
	if v, ok := cols["password_hash"]; ok {
		u.PasswordHash = v.(string)
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Tenants ───────────────────────────────────────────────────────────────────

type stubTenantRepo struct {
	tenants map[uuid.UUID]*model.Tenant
	deleted []uuid.UUID
	// deleteErr, when set, is returned by Delete (FK violation simulation).
	deleteErr error
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{tenants: make(map[uuid.UUID]*model.Tenant)}
}

func (r *stubTenantRepo) CreateTx(_ *gorm.DB, t *model.Tenant) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tenants[t.ID] = t
	return nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTenantRepo) List(_ context.Context) ([]model.Tenant, error) {
	out := make([]model.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTenantRepo) ListByReseller(_ context.Context, resellerID uuid.UUID) ([]model.Tenant, error) {
	var out []model.Tenant
	for _, t := range r.tenants {
		if t.ResellerID != nil && *t.ResellerID == resellerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTenantRepo) UpdateColumns(_ context.Context, id uuid.UUID, cols map[string]interface{}) error {
	t, ok := r.tenants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cols["name"]; ok {
		t.Name = v.(string)
	}
	if v, ok := cols["status"]; ok {
		t.Status = v.(string)
	}
	return nil
}

func (r *stubTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.tenants[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tenants, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubTenantRepo) CountByReseller(_ context.Context, resellerID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.tenants {
		if t.ResellerID != nil && *t.ResellerID == resellerID {
			n++
		}
	}
	return n, nil
}

func (r *stubTenantRepo) DB() *gorm.DB { return nil }

var _ repository.TenantRepository = (*stubTenantRepo)(nil)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(tenantID uuid.UUID, name string, price int64, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDForTenant(_ context.Context, id, tenantID uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) UpdateColumns(_ context.Context, id, tenantID uuid.UUID, cols map[string]interface{}) error {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	if v, ok := cols["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := cols["price"]; ok {
		p.Price = v.(int64)
	}
	if v, ok := cols["stock_quantity"]; ok {
		p.StockQuantity = v.(int)
	}
	return nil
}

func (r *stubProductRepo) CountByTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) LowStock(_ context.Context, tenantID uuid.UUID, threshold, _ int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.TenantID == tenantID && p.StockQuantity <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindForUpdateTx(_ *gorm.DB, id, tenantID uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity -= quantity
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Sales ─────────────────────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) FindByIDForTenant(_ context.Context, id, tenantID uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) Totals(_ context.Context, tenantID uuid.UUID) (int64, int64, error) {
	var revenue, count int64
	for _, s := range r.sales {
		if s.TenantID == tenantID {
			revenue += s.TotalAmount
			count++
		}
	}
	return revenue, count, nil
}

func (r *stubSaleRepo) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]model.Sale, error) {
	out, err := r.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) Trend(_ context.Context, _ uuid.UUID, _ int) ([]dto.SalesTrendPoint, error) {
	return nil, nil
}

func (r *stubSaleRepo) TopProducts(_ context.Context, _ uuid.UUID, _ int) ([]dto.TopProduct, error) {
	return nil, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Customers ─────────────────────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) FindByIDForTenant(_ context.Context, id, tenantID uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) CountByTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)
