package sales_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/pkg/money"
)

type tenantsStub struct{ shop *entity.Tenant }

func (s tenantsStub) Create(context.Context, *entity.Tenant) error { return nil }
func (s tenantsStub) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	if s.shop != nil && s.shop.ID == id {
		return s.shop, nil
	}
	return nil, nil
}
func (s tenantsStub) GetByDomain(context.Context, string) (*entity.Tenant, error) { return nil, nil }
func (s tenantsStub) Update(context.Context, *entity.Tenant) error                { return nil }
func (s tenantsStub) SetActive(context.Context, string, bool) error               { return nil }
func (s tenantsStub) List(context.Context, int, int) ([]*entity.Tenant, error)    { return nil, nil }
func (s tenantsStub) Delete(context.Context, string) error                        { return nil }

type receiptStub struct{ gotShop string }

func (r *receiptStub) RenderReceipt(sale *entity.Sale, shop *entity.Tenant) ([]byte, error) {
	r.gotShop = shop.ShopName
	return []byte("%PDF-" + sale.ID), nil
}

func newHistory(t *testing.T) (*sales.SalesUseCase, *saleRepo, *receiptStub) {
	t.Helper()
	f, err := money.NewFormatter("INR", language.English)
	require.NoError(t, err)
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	repo := &saleRepo{byID: map[string]*entity.Sale{
		"s1": {ID: "s1", TenantID: "t1", Date: now.Add(-2 * time.Hour), GrandTotal: d("144.55"), PaymentMethod: "cash",
			Items: []entity.SaleItem{{ProductID: "urea", ProductName: "Urea", Quantity: 2, UnitPrice: d("32"), Subtotal: d("64")}}},
		"s2": {ID: "s2", TenantID: "t1", Date: now.Add(-time.Hour), GrandTotal: d("1089.95"), PaymentMethod: "upi"},
		"s3": {ID: "s3", TenantID: "t1", Date: now.AddDate(0, 0, -3), GrandTotal: d("50")},
		"s4": {ID: "s4", TenantID: "t2", Date: now.Add(-time.Hour), GrandTotal: d("99")},
	}}
	renderer := &receiptStub{}
	shop := &entity.Tenant{ID: "t1", ShopName: "Green Valley Agro"}
	return sales.NewSalesUseCase(repo, tenantsStub{shop: shop}, renderer, f), repo, renderer
}

func TestToday_TotalFormateado(t *testing.T) {
	uc, _, _ := newHistory(t)
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	out, err := uc.Today(context.Background(), "t1", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", out.Date)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Total.Equal(d("1234.50")))
	assert.Equal(t, "INR 1,234.50", out.Formatted)
}

func TestList_RangoPorDefectoYValidacion(t *testing.T) {
	uc, _, _ := newHistory(t)
	ctx := context.Background()
	to := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	out, err := uc.List(ctx, "t1", time.Time{}, to, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 20, out.Page.Limit)

	_, err = uc.List(ctx, "t1", to, to, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetByIDYRecibo(t *testing.T) {
	uc, _, renderer := newHistory(t)
	ctx := context.Background()

	sale, err := uc.GetByID(ctx, "t1", "s1")
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Urea", sale.Items[0].ProductName)

	none, err := uc.GetByID(ctx, "t1", "s4")
	assert.NoError(t, err)
	assert.Nil(t, none, "venta de otra tienda")

	pdf, err := uc.Receipt(ctx, "t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-s1", string(pdf))
	assert.Equal(t, "Green Valley Agro", renderer.gotShop)

	_, err = uc.Receipt(ctx, "t1", "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_CSVConVentasDelRango(t *testing.T) {
	uc, _, _ := newHistory(t)
	to := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	raw, err := uc.Export(context.Background(), "t1", time.Time{}, to)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "cabecera y tres ventas de t1")
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"s2", "s1", "s3"}, []string{rows[1][0], rows[2][0], rows[3][0]})
	assert.Equal(t, "144.55", rows[2][8])
	assert.Equal(t, "cash", rows[2][5])

	_, err = uc.Export(context.Background(), "t1", to, to)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExport_RecorreVariosLotes(t *testing.T) {
	uc, repo, _ := newHistory(t)
	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1200; i++ {
		id := fmt.Sprintf("lote-%04d", i)
		repo.byID[id] = &entity.Sale{ID: id, TenantID: "t3", Date: base.Add(time.Duration(i) * time.Minute), GrandTotal: d("10")}
	}

	raw, err := uc.Export(context.Background(), "t3", base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1201)
	assert.Equal(t, "lote-1199", rows[1][0])
	assert.Equal(t, "lote-0000", rows[1200][0])
}
