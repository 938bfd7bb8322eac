package pos_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(id, price string) pos.Product {
	return pos.Product{ID: id, Name: "Producto " + id, UnitPrice: dec(price), Stock: dec("100"), UnitMeasure: "kg"}
}

func fixedCart(opts ...pos.Option) *pos.Cart {
	base := []pos.Option{
		pos.WithOwner("tenant-1", "user-1"),
		pos.WithClock(func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }),
		pos.WithIDGenerator(func() string { return "sale-1" }),
	}
	return pos.NewCart(append(base, opts...)...)
}

type recordingSink struct {
	sales []pos.Sale
	err   error
}

func (s *recordingSink) RecordSale(_ context.Context, sale pos.Sale) error {
	if s.err != nil {
		return s.err
	}
	s.sales = append(s.sales, sale)
	return nil
}

func TestCart_NewIsEmpty(t *testing.T) {
	c := pos.NewCart()
	assert.Equal(t, pos.StatusEmpty, c.Status())
	assert.Empty(t, c.Items())
	assert.True(t, c.TaxRate().Equal(pos.DefaultTaxRate))
	_, ok := c.Customer()
	assert.False(t, ok)
}

func TestCart_AddSameProductTwiceIncrementsQuantity(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	require.NoError(t, c.AddItem(product("A", "32.00")))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, pos.StatusFilling, c.Status())
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("B", "1")))
	require.NoError(t, c.AddItem(product("A", "1")))
	require.NoError(t, c.AddItem(product("B", "1")))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Product.ID)
	assert.Equal(t, "A", items[1].Product.ID)
}

func TestCart_AddItemRejectsInvalidProduct(t *testing.T) {
	c := fixedCart()
	err := c.AddItem(pos.Product{ID: "", UnitPrice: dec("1")})
	assert.ErrorIs(t, err, pos.ErrInvalidProduct)
	err = c.AddItem(pos.Product{ID: "X", UnitPrice: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, pos.StatusEmpty, c.Status())
}

func TestCart_UpdateQuantityBelowOneLeavesCartUnchanged(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	require.NoError(t, c.UpdateQuantity("A", 3))
	before := c.Snapshot()

	for _, q := range []int{0, -1} {
		err := c.UpdateQuantity("A", q)
		assert.ErrorIs(t, err, pos.ErrInvalidQuantity)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, before, c.Snapshot())
	}
}

func TestCart_UpdateQuantityUnknownProduct(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	assert.ErrorIs(t, c.UpdateQuantity("Z", 2), pos.ErrItemNotFound)
}

func TestCart_RemoveItemTransitions(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	require.NoError(t, c.AddItem(product("B", "1")))

	require.NoError(t, c.RemoveItem("A"))
	assert.Equal(t, pos.StatusFilling, c.Status())
	require.NoError(t, c.RemoveItem("B"))
	assert.Equal(t, pos.StatusEmpty, c.Status())
	assert.ErrorIs(t, c.RemoveItem("B"), pos.ErrItemNotFound)
}

func TestCart_ClearFromAnyState(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	c.SelectCustomer(pos.WalkIn())
	require.NoError(t, c.BeginPayment())
	assert.Equal(t, pos.StatusReadyForPayment, c.Status())

	c.Clear()
	assert.Equal(t, pos.StatusEmpty, c.Status())
	assert.Empty(t, c.Items())
	_, ok := c.Customer()
	assert.False(t, ok)
}

func TestCart_ComputeTotalsIsExact(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	require.NoError(t, c.AddItem(product("B", "58.50")))
	require.NoError(t, c.AddItem(product("C", "155.00")))

	totals := c.ComputeTotals()
	assert.Equal(t, "245.50", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "44.19", totals.Tax.StringFixed(2))
	assert.Equal(t, "289.69", totals.Total.StringFixed(2))
}

func TestCart_ComputeTotalsNoDriftOnRepeatedAdds(t *testing.T) {
	c := fixedCart()
	for i := 0; i < 10; i++ {
		require.NoError(t, c.AddItem(product("A", "0.10")))
	}
	totals := c.ComputeTotals()
	assert.True(t, totals.Subtotal.Equal(dec("1.00")), totals.Subtotal.String())
	assert.True(t, totals.Tax.Equal(dec("0.18")))
}

func TestCart_ConfigurableTaxRate(t *testing.T) {
	c := fixedCart(pos.WithTaxRate(dec("0.05")))
	require.NoError(t, c.AddItem(product("A", "100.00")))
	totals := c.ComputeTotals()
	assert.Equal(t, "5.00", totals.Tax.StringFixed(2))
	assert.Equal(t, "105.00", totals.Total.StringFixed(2))
}

func TestCart_CheckoutEmptyRejectedRegardlessOfCustomer(t *testing.T) {
	sink := &recordingSink{}

	c := fixedCart()
	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, sink)
	assert.ErrorIs(t, err, pos.ErrEmptyCart)

	c.SelectCustomer(pos.WalkIn())
	_, err = c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, sink)
	assert.ErrorIs(t, err, pos.ErrEmptyCart)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
	assert.Empty(t, sink.sales)
}

func TestCart_CheckoutWithoutCustomer(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, &recordingSink{})
	assert.ErrorIs(t, err, pos.ErrNoCustomer)
	assert.ErrorIs(t, c.BeginPayment(), pos.ErrNoCustomer)
	assert.Equal(t, pos.StatusFilling, c.Status())
}

func TestCart_CheckoutInsufficientCashKeepsState(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	c.SelectCustomer(pos.WalkIn())
	require.NoError(t, c.BeginPayment())
	before := c.Snapshot()
	sink := &recordingSink{}

	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCash, Tendered: dec("10.00")}, sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientTender)

	var tenderErr *pos.TenderError
	require.True(t, errors.As(err, &tenderErr))
	assert.Equal(t, "37.76", tenderErr.Total.StringFixed(2))
	assert.Equal(t, "27.76", tenderErr.Shortfall().StringFixed(2))

	assert.Equal(t, pos.StatusReadyForPayment, c.Status())
	assert.Equal(t, before, c.Snapshot())
	assert.Empty(t, sink.sales)
}

func TestCart_CheckoutUnknownPaymentMethod(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	c.SelectCustomer(pos.WalkIn())
	_, err := c.Checkout(context.Background(), pos.Payment{Method: "cheque"}, &recordingSink{})
	assert.ErrorIs(t, err, pos.ErrInvalidPaymentMethod)
	assert.Equal(t, pos.StatusFilling, c.Status())
}

func TestCart_EndToEndCashSale(t *testing.T) {
	c := fixedCart()
	a := product("A", "32.00")
	require.NoError(t, c.AddItem(a))
	require.NoError(t, c.AddItem(a))
	require.NoError(t, c.AddItem(product("B", "58.50")))
	c.SelectCustomer(pos.CustomerSelection{ID: "cust-1", Name: "Ramesh", OutstandingBalance: dec("0")})

	totals := c.ComputeTotals()
	assert.Equal(t, "122.50", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "22.05", totals.Tax.StringFixed(2))
	assert.Equal(t, "144.55", totals.Total.StringFixed(2))

	sink := &recordingSink{}
	sale, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCash, Tendered: dec("150.00")}, sink)
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, "sale-1", sale.ID)
	assert.Equal(t, "tenant-1", sale.TenantID)
	assert.Equal(t, "user-1", sale.CashierID)
	assert.Equal(t, "cust-1", sale.Customer.ID)
	assert.Equal(t, "122.50", sale.Subtotal.StringFixed(2))
	assert.Equal(t, "22.05", sale.Tax.StringFixed(2))
	assert.Equal(t, "144.55", sale.Total.StringFixed(2))
	assert.Equal(t, "150.00", sale.AmountTendered.StringFixed(2))
	assert.Equal(t, "5.45", sale.Change.StringFixed(2))
	require.Len(t, sale.Items, 2)
	assert.Equal(t, 2, sale.Items[0].Quantity)

	require.Len(t, sink.sales, 1)
	assert.Equal(t, *sale, sink.sales[0])

	assert.Equal(t, pos.StatusEmpty, c.Status())
	assert.Empty(t, c.Items())
	_, ok := c.Customer()
	assert.False(t, ok)
}

func TestCart_NonCashTenderDefaultsToTotal(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "100.00")))
	c.SelectCustomer(pos.WalkIn())

	sale, err := c.PrepareSale(pos.Payment{Method: pos.PaymentUPI, Tendered: dec("1")})
	require.NoError(t, err)
	assert.True(t, sale.AmountTendered.Equal(sale.Total))
	assert.True(t, sale.Change.IsZero())
	assert.Equal(t, pos.StatusFilling, c.Status(), "PrepareSale no modifica el carrito")
}

func TestCart_SaleItemsAreCopies(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "10.00")))
	c.SelectCustomer(pos.WalkIn())

	sale, err := c.PrepareSale(pos.Payment{Method: pos.PaymentCard})
	require.NoError(t, err)
	require.NoError(t, c.UpdateQuantity("A", 5))
	assert.Equal(t, 1, sale.Items[0].Quantity)
}

func TestCart_SinkFailureLeavesCartUntouched(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "10.00")))
	c.SelectCustomer(pos.WalkIn())
	require.NoError(t, c.BeginPayment())
	before := c.Snapshot()

	boom := errors.New("conexión rechazada")
	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, &recordingSink{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, pos.StatusReadyForPayment, c.Status())
}

func TestCart_CheckoutNilSink(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	c.SelectCustomer(pos.WalkIn())
	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, nil)
	assert.ErrorIs(t, err, pos.ErrNilSink)
}

func TestCart_SinkFuncAdapter(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	c.SelectCustomer(pos.WalkIn())

	var got pos.Sale
	sink := pos.SaleSinkFunc(func(_ context.Context, s pos.Sale) error { got = s; return nil })
	sale, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCard}, sink)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
}

func TestCart_SelectCustomerLeavesReadyForPayment(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "1")))
	c.SelectCustomer(pos.WalkIn())
	require.NoError(t, c.BeginPayment())
	c.SelectCustomer(pos.CustomerSelection{ID: "c2", Name: "Otro"})
	assert.Equal(t, pos.StatusFilling, c.Status())

	require.NoError(t, c.BeginPayment())
	c.CancelPayment()
	assert.Equal(t, pos.StatusFilling, c.Status())
}

func TestCart_StockWarnings(t *testing.T) {
	c := fixedCart()
	p := product("A", "1")
	p.Stock = dec("1")
	require.NoError(t, c.AddItem(p))
	assert.Empty(t, c.StockWarnings())
	require.NoError(t, c.AddItem(p))
	assert.Equal(t, []string{"A"}, c.StockWarnings())
}

func TestCart_SnapshotRestore(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	require.NoError(t, c.UpdateQuantity("A", 4))
	c.SelectCustomer(pos.WalkIn())
	require.NoError(t, c.BeginPayment())

	restored, err := pos.Restore(c.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, c.Snapshot(), restored.Snapshot())
	assert.Equal(t, pos.StatusReadyForPayment, restored.Status())
}

func TestRestore_RejectsInvalidState(t *testing.T) {
	cases := map[string]pos.State{
		"cantidad cero": {Items: []pos.LineItem{{Product: product("A", "1"), Quantity: 0}}},
		"id duplicado": {Items: []pos.LineItem{
			{Product: product("A", "1"), Quantity: 1},
			{Product: product("A", "1"), Quantity: 2},
		}},
		"sin id": {Items: []pos.LineItem{{Product: pos.Product{UnitPrice: dec("1")}, Quantity: 1}}},
	}
	for name, st := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pos.Restore(st)
			assert.ErrorIs(t, err, pos.ErrInvalidState)
		})
	}
}

func TestRestore_NormalizesStatus(t *testing.T) {
	c, err := pos.Restore(pos.State{Status: pos.StatusReadyForPayment, Items: []pos.LineItem{{Product: product("A", "1"), Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, pos.StatusFilling, c.Status(), "sin cliente no puede quedar listo para pago")

	c, err = pos.Restore(pos.State{Status: pos.StatusFilling})
	require.NoError(t, err)
	assert.Equal(t, pos.StatusEmpty, c.Status())
}

func TestCart_CashTenderWithMoreThanTwoDecimalsRejected(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "32.00")))
	c.SelectCustomer(pos.WalkIn())
	sink := &recordingSink{}

	_, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCash, Tendered: dec("40.0049")}, sink)
	assert.ErrorIs(t, err, pos.ErrInvalidTender)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, sink.sales)
	assert.Equal(t, pos.StatusFilling, c.Status())

	sale, err := c.Checkout(context.Background(), pos.Payment{Method: pos.PaymentCash, Tendered: dec("40.0000")}, sink)
	require.NoError(t, err)
	assert.Equal(t, "2.24", sale.Change.String())
}

func TestRestore_KeepsStoredTaxRate(t *testing.T) {
	c := fixedCart()
	require.NoError(t, c.AddItem(product("A", "100.00")))
	st := c.Snapshot()
	require.True(t, st.TaxRate.Valid)

	restored, err := pos.Restore(st, pos.WithTaxRate(dec("0.05")))
	require.NoError(t, err)
	assert.Equal(t, "118.00", restored.ComputeTotals().Total.StringFixed(2))

	legacy, err := pos.Restore(pos.State{Items: st.Items}, pos.WithTaxRate(dec("0.05")))
	require.NoError(t, err)
	assert.Equal(t, "105.00", legacy.ComputeTotals().Total.StringFixed(2))

	st.TaxRate = decimal.NullDecimal{Decimal: dec("-0.1"), Valid: true}
	_, err = pos.Restore(st)
	assert.ErrorIs(t, err, pos.ErrInvalidState)
}
