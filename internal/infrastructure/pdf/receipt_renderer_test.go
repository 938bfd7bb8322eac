package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fertipos-api/pkg/money"
)

func TestReceiptRenderer_RenderReceipt(t *testing.T) {
	f, err := money.NewFormatter("INR", language.English)
	require.NoError(t, err)
	r := pdf.NewReceiptRenderer(f)

	sale := &entity.Sale{
		ID:             "3f2b9c1e-8d4a-4b7e-9a11-0c5d6e7f8a9b",
		CustomerName:   "Walk-in Customer",
		Date:           time.Date(2026, 2, 14, 11, 5, 0, 0, time.UTC),
		TaxRate:        decimal.RequireFromString("0.18"),
		Subtotal:       decimal.RequireFromString("122.50"),
		TaxTotal:       decimal.RequireFromString("22.05"),
		GrandTotal:     decimal.RequireFromString("144.55"),
		PaymentMethod:  "cash",
		AmountTendered: decimal.RequireFromString("150"),
		Change:         decimal.RequireFromString("5.45"),
		Items: []entity.SaleItem{
			{ProductName: "NPK 19-19-19", Unit: "kg", HSNCode: "3105", Quantity: 1, UnitPrice: decimal.RequireFromString("122.50"), Subtotal: decimal.RequireFromString("122.50")},
		},
	}
	shop := &entity.Tenant{ShopName: "Green Valley Agro", GSTNumber: "27AAPFU0939F1ZV", Phone: "+919876543210"}

	out, err := r.RenderReceipt(sale, shop)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestReceiptRenderer_RequiresSaleAndShop(t *testing.T) {
	f, err := money.NewFormatter("INR", language.English)
	require.NoError(t, err)
	r := pdf.NewReceiptRenderer(f)

	_, err = r.RenderReceipt(nil, &entity.Tenant{})
	assert.Error(t, err)
	_, err = r.RenderReceipt(&entity.Sale{}, nil)
	assert.Error(t, err)
}

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "R-3F2B9C1E", pdf.ReceiptNumber(&entity.Sale{ID: "3f2b9c1e-8d4a-4b7e-9a11-0c5d6e7f8a9b"}))
	assert.Equal(t, "R-AB12", pdf.ReceiptNumber(&entity.Sale{ID: "ab12"}))
}
