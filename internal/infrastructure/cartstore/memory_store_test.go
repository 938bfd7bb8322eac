package cartstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/internal/infrastructure/cartstore"
)

func sampleState() pos.State {
	walkIn := pos.WalkIn()
	return pos.State{
		Status: pos.StatusFilling,
		Items: []pos.LineItem{{
			Product:  pos.Product{ID: "p1", Name: "Urea 45kg", UnitPrice: decimal.RequireFromString("266.50"), Stock: decimal.NewFromInt(40)},
			Quantity: 2,
		}},
		Customer: &walkIn,
	}
}

func TestMemoryStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	store := cartstore.NewMemoryStore(0)

	_, ok, err := store.Load(ctx, "t1:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "t1:u1", sampleState()))
	got, ok, err := store.Load(ctx, "t1:u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pos.StatusFilling, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	require.NotNil(t, got.Customer)
	assert.True(t, got.Customer.WalkIn)

	_, ok, err = store.Load(ctx, "t1:u2")
	require.NoError(t, err)
	assert.False(t, ok, "otra sesión no ve el carrito")

	require.NoError(t, store.Delete(ctx, "t1:u1"))
	require.NoError(t, store.Delete(ctx, "t1:u1"))
	_, ok, err = store.Load(ctx, "t1:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := cartstore.NewMemoryStore(0)
	st := sampleState()
	require.NoError(t, store.Save(ctx, "k", st))

	st.Items[0].Quantity = 99
	st.Customer.Name = "otro"

	got, _, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "Walk-in Customer", got.Customer.Name)

	got.Items[0].Quantity = 7
	again, _, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := cartstore.NewMemoryStore(time.Hour)
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, "k", sampleState()))

	now = now.Add(59 * time.Minute)
	_, ok, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "expira al cumplirse el TTL")
}
