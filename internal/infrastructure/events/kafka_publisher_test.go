package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/events"
)

func TestNewSaleCompletedEvent(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	sale := &entity.Sale{
		ID:            "s1",
		TenantID:      "t1",
		CashierID:     "u1",
		CustomerID:    entity.WalkInCustomerID,
		PaymentMethod: "upi",
		Date:          time.Date(2026, 2, 14, 15, 30, 0, 0, ist),
		Subtotal:      decimal.RequireFromString("245.50"),
		TaxTotal:      decimal.RequireFromString("44.19"),
		GrandTotal:    decimal.RequireFromString("289.69"),
		Items: []entity.SaleItem{
			{ProductID: "p1", SKU: "UREA-45", Quantity: 1, Subtotal: decimal.RequireFromString("245.50")},
		},
	}

	ev := events.NewSaleCompletedEvent(sale)
	assert.Equal(t, events.SaleCompletedType, ev.Type)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.Equal(t, 10, ev.OccurredAt.Hour())
	require.Len(t, ev.Items, 1)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "sale.completed", body["type"])
	assert.Equal(t, "walkin", body["customer_id"])
	assert.Equal(t, "289.69", body["grand_total"])
}

func TestNewSaleCompletedEvent_NoItems(t *testing.T) {
	ev := events.NewSaleCompletedEvent(&entity.Sale{ID: "s2"})
	assert.NotNil(t, ev.Items)
	assert.Empty(t, ev.Items)
}
