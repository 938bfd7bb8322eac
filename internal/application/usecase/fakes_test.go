package usecase_test

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

type memTenants struct{ byID map[string]*entity.Tenant }

func newMemTenants() *memTenants { return &memTenants{byID: map[string]*entity.Tenant{}} }

func (m *memTenants) Create(_ context.Context, t *entity.Tenant) error {
	m.byID[t.ID] = t
	return nil
}
func (m *memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return m.byID[id], nil
}
func (m *memTenants) GetByDomain(_ context.Context, d string) (*entity.Tenant, error) {
	for _, t := range m.byID {
		if t.ShopDomain == d {
			return t, nil
		}
	}
	return nil, nil
}
func (m *memTenants) Update(_ context.Context, t *entity.Tenant) error {
	m.byID[t.ID] = t
	return nil
}
func (m *memTenants) SetActive(_ context.Context, id string, active bool) error {
	t, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.IsActive = active
	return nil
}
func (m *memTenants) List(context.Context, int, int) ([]*entity.Tenant, error) {
	out := make([]*entity.Tenant, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, t)
	}
	return out, nil
}
func (m *memTenants) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memUsers struct{ byID map[string]*entity.User }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.byID[id], nil
}
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) GetByEmailAndTenant(ctx context.Context, email, tenantID string) (*entity.User, error) {
	u, _ := m.GetByEmail(ctx, email)
	if u != nil && u.TenantID == tenantID {
		return u, nil
	}
	return nil, nil
}
func (m *memUsers) ListByTenant(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}

// fakeOnboarding ejecuta fn contra repos en memoria y descarta los cambios si fn falla.
type fakeOnboarding struct {
	tenants *memTenants
	users   *memUsers
	failOn  error
}

func (f *fakeOnboarding) RunOnboarding(_ context.Context, fn func(repository.TenantRepository, repository.UserRepository) error) error {
	txTenants := &memTenants{byID: map[string]*entity.Tenant{}}
	for k, v := range f.tenants.byID {
		txTenants.byID[k] = v
	}
	txUsers := &memUsers{byID: map[string]*entity.User{}}
	for k, v := range f.users.byID {
		txUsers.byID[k] = v
	}
	if err := fn(txTenants, txUsers); err != nil {
		return err
	}
	if f.failOn != nil {
		return f.failOn
	}
	f.tenants.byID = txTenants.byID
	f.users.byID = txUsers.byID
	return nil
}

type memProducts struct{ byID map[string]*entity.Product }

func newMemProducts() *memProducts { return &memProducts{byID: map[string]*entity.Product{}} }

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	return p, nil
}
func (m *memProducts) GetBySKU(_ context.Context, tenantID, sku string) (*entity.Product, error) {
	for _, p := range m.byID {
		if p.TenantID == tenantID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.byID[p.ID] = p
	return nil
}
func (m *memProducts) DecrementStock(_ context.Context, tenantID, id string, qty decimal.Decimal) error {
	p, ok := m.byID[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	p.CurrentStock = p.CurrentStock.Sub(qty)
	return nil
}
func (m *memProducts) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) Search(_ context.Context, tenantID, term string, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	term = strings.ToLower(term)
	for _, p := range m.byID {
		if p.TenantID == tenantID && strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) ListLowStock(_ context.Context, tenantID string, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if p.TenantID == tenantID && p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) Delete(_ context.Context, _, id string) error {
	delete(m.byID, id)
	return nil
}

type memCustomers struct{ byID map[string]*entity.Customer }

func newMemCustomers() *memCustomers { return &memCustomers{byID: map[string]*entity.Customer{}} }

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCustomers) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	c, ok := m.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return c, nil
}
func (m *memCustomers) GetByPhone(_ context.Context, tenantID, phone string) (*entity.Customer, error) {
	for _, c := range m.byID {
		if c.TenantID == tenantID && c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCustomers) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range m.byID {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCustomers) Search(_ context.Context, tenantID, term string, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range m.byID {
		if c.TenantID == tenantID && (strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) || strings.Contains(c.Phone, term)) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	m.byID[c.ID] = c
	return nil
}
func (m *memCustomers) AddPurchase(_ context.Context, _, id string, amount decimal.Decimal) error {
	c, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalPurchases = c.TotalPurchases.Add(amount)
	return nil
}
func (m *memCustomers) Delete(_ context.Context, _, id string) error {
	delete(m.byID, id)
	return nil
}
