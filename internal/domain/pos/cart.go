package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// moneyScale decimales de los montos registrados (paise).
const moneyScale = 2

// Cart venta en curso de una sesión de caja. No es seguro para uso concurrente:
// tiene un único dueño.
type Cart struct {
	tenantID  string
	cashierID string
	items     []LineItem
	customer  *CustomerSelection
	status    Status
	taxRate   decimal.Decimal
	now       func() time.Time
	newID     func() string
}

// Option configura un Cart.
type Option func(*Cart)

// WithTaxRate fija la tasa de impuesto (fracción, ej: 0.18).
func WithTaxRate(rate decimal.Decimal) Option {
	return func(c *Cart) { c.taxRate = rate }
}

// WithOwner asocia el carrito a la tienda y al cajero de la sesión.
func WithOwner(tenantID, cashierID string) Option {
	return func(c *Cart) {
		c.tenantID = tenantID
		c.cashierID = cashierID
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

// WithIDGenerator reemplaza el generador de IDs de venta (tests).
func WithIDGenerator(gen func() string) Option {
	return func(c *Cart) { c.newID = gen }
}

// NewCart crea un carrito vacío.
func NewCart(opts ...Option) *Cart {
	c := &Cart{
		status:  StatusEmpty,
		taxRate: DefaultTaxRate,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status estado actual.
func (c *Cart) Status() Status { return c.status }

// TaxRate tasa de impuesto configurada.
func (c *Cart) TaxRate() decimal.Decimal { return c.taxRate }

// Items copia de las líneas en orden de inserción.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Customer cliente seleccionado; ok=false si aún no hay selección.
func (c *Cart) Customer() (CustomerSelection, bool) {
	if c.customer == nil {
		return CustomerSelection{}, false
	}
	return *c.customer, true
}

// AddItem agrega el producto. Si ya existe incrementa su cantidad en 1.
// El stock es informativo: no se rechaza la sobreventa aquí.
func (c *Cart) AddItem(p Product) error {
	if p.ID == "" || p.UnitPrice.IsNegative() {
		return ErrInvalidProduct
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, LineItem{Product: p, Quantity: 1})
	}
	c.status = StatusFilling
	return nil
}

// UpdateQuantity fija la cantidad exacta. Rechaza cantidades menores a 1 sin modificar nada;
// para quitar una línea se usa RemoveItem.
func (c *Cart) UpdateQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.items[i].Quantity = quantity
	c.status = StatusFilling
	return nil
}

// RemoveItem elimina la línea. Si el carrito queda sin líneas vuelve a Empty.
func (c *Cart) RemoveItem(productID string) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	if len(c.items) == 0 {
		c.status = StatusEmpty
	} else {
		c.status = StatusFilling
	}
	return nil
}

// SelectCustomer asocia el cliente de la venta.
func (c *Cart) SelectCustomer(sel CustomerSelection) {
	s := sel
	c.customer = &s
	if c.status == StatusReadyForPayment {
		c.status = StatusFilling
	}
}

// Clear descarta líneas y cliente desde cualquier estado.
func (c *Cart) Clear() {
	c.items = nil
	c.customer = nil
	c.status = StatusEmpty
}

// ComputeTotals subtotal exacto, impuesto redondeado a 2 decimales, total = subtotal + impuesto.
func (c *Cart) ComputeTotals() Totals {
	return computeTotals(c.items, c.taxRate)
}

func computeTotals(items []LineItem, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	tax := subtotal.Mul(rate).Round(moneyScale)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// StockWarnings IDs de productos cuya cantidad supera el stock conocido.
func (c *Cart) StockWarnings() []string {
	var ids []string
	for _, it := range c.items {
		if it.ExceedsStock() {
			ids = append(ids, it.Product.ID)
		}
	}
	return ids
}

// BeginPayment pasa a ReadyForPayment si hay líneas y cliente.
func (c *Cart) BeginPayment() error {
	if err := c.checkPreconditions(); err != nil {
		return err
	}
	c.status = StatusReadyForPayment
	return nil
}

// CancelPayment vuelve de ReadyForPayment a Filling.
func (c *Cart) CancelPayment() {
	if c.status == StatusReadyForPayment {
		c.status = StatusFilling
	}
}

// PrepareSale construye la venta sin modificar el carrito.
func (c *Cart) PrepareSale(p Payment) (*Sale, error) {
	if err := c.checkPreconditions(); err != nil {
		return nil, err
	}
	if !p.Method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	totals := c.ComputeTotals()
	tendered := totals.Total
	change := decimal.Zero
	if p.Method == PaymentCash {
		if p.Tendered.IsNegative() || !p.Tendered.Equal(p.Tendered.Round(moneyScale)) {
			return nil, ErrInvalidTender
		}
		tendered = p.Tendered
		change = tendered.Sub(totals.Total)
		if change.IsNegative() {
			return nil, &TenderError{Total: totals.Total, Tendered: tendered}
		}
	}
	return &Sale{
		ID:             c.newID(),
		TenantID:       c.tenantID,
		CashierID:      c.cashierID,
		Timestamp:      c.now(),
		Customer:       *c.customer,
		Items:          c.Items(),
		TaxRate:        c.taxRate,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		PaymentMethod:  p.Method,
		AmountTendered: tendered,
		Change:         change,
	}, nil
}

// Checkout prepara la venta, la entrega al sink y solo si éste confirma deja el carrito en Empty.
// Si el sink falla el carrito no cambia y el error se devuelve al caller.
func (c *Cart) Checkout(ctx context.Context, p Payment, sink SaleSink) (*Sale, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	sale, err := c.PrepareSale(p)
	if err != nil {
		return nil, err
	}
	if err := sink.RecordSale(ctx, *sale); err != nil {
		return nil, fmt.Errorf("registrar venta: %w", err)
	}
	c.status = StatusCompleted
	c.Clear()
	return sale, nil
}

func (c *Cart) checkPreconditions() error {
	if len(c.items) == 0 {
		return ErrEmptyCart
	}
	if c.customer == nil {
		return ErrNoCustomer
	}
	return nil
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
