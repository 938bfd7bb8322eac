package sales_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

type memStore struct {
	mu        sync.Mutex
	data      map[string]pos.State
	saveErr   error
	deleteErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]pos.State{}} }

func (m *memStore) Load(_ context.Context, key string) (pos.State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.data[key]
	return st, ok, nil
}

func (m *memStore) Save(_ context.Context, key string, st pos.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = st
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.data, key)
	return nil
}

type catalog struct{ byID map[string]*entity.Product }

func (c *catalog) Create(context.Context, *entity.Product) error { return nil }
func (c *catalog) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	p, ok := c.byID[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (c *catalog) GetBySKU(context.Context, string, string) (*entity.Product, error) { return nil, nil }
func (c *catalog) Update(context.Context, *entity.Product) error                     { return nil }
func (c *catalog) DecrementStock(_ context.Context, tenantID, id string, qty decimal.Decimal) error {
	p, ok := c.byID[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	if p.CurrentStock.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	p.CurrentStock = p.CurrentStock.Sub(qty)
	return nil
}
func (c *catalog) ListByTenant(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (c *catalog) Search(context.Context, string, string, int) ([]*entity.Product, error) {
	return nil, nil
}
func (c *catalog) ListLowStock(context.Context, string, int) ([]*entity.Product, error) {
	return nil, nil
}
func (c *catalog) Delete(context.Context, string, string) error { return nil }

type customers struct{ byID map[string]*entity.Customer }

func (c *customers) Create(context.Context, *entity.Customer) error { return nil }
func (c *customers) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	cu, ok := c.byID[id]
	if !ok || cu.TenantID != tenantID {
		return nil, nil
	}
	return cu, nil
}
func (c *customers) GetByPhone(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}
func (c *customers) ListByTenant(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (c *customers) Search(context.Context, string, string, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (c *customers) Update(context.Context, *entity.Customer) error { return nil }
func (c *customers) AddPurchase(_ context.Context, _, id string, amount decimal.Decimal) error {
	cu, ok := c.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	cu.TotalPurchases = cu.TotalPurchases.Add(amount)
	return nil
}
func (c *customers) Delete(context.Context, string, string) error { return nil }

type saleRepo struct {
	byID      map[string]*entity.Sale
	createErr error
}

func (r *saleRepo) Create(_ context.Context, s *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[s.ID] = s
	return nil
}
func (r *saleRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	s, ok := r.byID[id]
	if !ok || s.TenantID != tenantID {
		return nil, nil
	}
	return s, nil
}
func (r *saleRepo) ListByTenant(_ context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.byID {
		if s.TenantID == tenantID && !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// fakeTx aplica los cambios sobre copias y solo los confirma si fn no falla.
type fakeTx struct {
	products  *catalog
	customers *customers
	sales     *saleRepo
	runs      int
}

func (f *fakeTx) RunSale(_ context.Context, fn func(repository.SaleRepository, repository.ProductRepository, repository.CustomerRepository) error) error {
	f.runs++
	prodCopy := &catalog{byID: map[string]*entity.Product{}}
	for k, v := range f.products.byID {
		cp := *v
		prodCopy.byID[k] = &cp
	}
	custCopy := &customers{byID: map[string]*entity.Customer{}}
	for k, v := range f.customers.byID {
		cp := *v
		custCopy.byID[k] = &cp
	}
	salesCopy := &saleRepo{byID: map[string]*entity.Sale{}, createErr: f.sales.createErr}
	for k, v := range f.sales.byID {
		salesCopy.byID[k] = v
	}
	if err := fn(salesCopy, prodCopy, custCopy); err != nil {
		return err
	}
	f.products.byID = prodCopy.byID
	f.customers.byID = custCopy.byID
	f.sales.byID = salesCopy.byID
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*entity.Sale
	err    error
	block  chan struct{}
}

func (p *recordingPublisher) PublishSaleCompleted(ctx context.Context, s *entity.Sale) error {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, s)
	return p.err
}

func (p *recordingPublisher) published() []*entity.Sale {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*entity.Sale(nil), p.events...)
}

type recordingMetrics struct {
	completed []string
	failed    []string
	ops       []string
}

func (m *recordingMetrics) SaleCompleted(_, method string, _ decimal.Decimal) {
	m.completed = append(m.completed, method)
}
func (m *recordingMetrics) CheckoutFailed(reason string) { m.failed = append(m.failed, reason) }
func (m *recordingMetrics) CartOperation(op string)      { m.ops = append(m.ops, op) }

var errBroker = errors.New("broker caído")
