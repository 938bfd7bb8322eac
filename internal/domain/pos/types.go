// Package pos contiene el motor de carrito y cobro del punto de venta.
//
// Un Cart pertenece a una única sesión de caja: no tiene locks internos y todas
// sus operaciones son síncronas y en memoria. La persistencia de la venta se
// delega en un SaleSink externo.
package pos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Status estado del carrito.
type Status string

// Estados de la máquina: empty -> filling -> ready_for_payment -> completed.
const (
	StatusEmpty           Status = "empty"
	StatusFilling         Status = "filling"
	StatusReadyForPayment Status = "ready_for_payment"
	StatusCompleted       Status = "completed"
)

// DefaultTaxRate GST aplicado por defecto (18%).
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Product copia de un producto del catálogo tomada al agregarlo al carrito.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	Stock       decimal.Decimal `json:"stock"`
	HSNCode     string          `json:"hsn_code,omitempty"` // dato opaco
}

// LineItem línea del carrito. Quantity >= 1 siempre.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal precio unitario × cantidad, exacto.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ExceedsStock aviso: la cantidad supera el stock disponible conocido al agregar.
func (l LineItem) ExceedsStock() bool {
	return decimal.NewFromInt(int64(l.Quantity)).GreaterThan(l.Product.Stock)
}

// CustomerSelection cliente asociado a la venta: uno concreto o el cliente de mostrador.
type CustomerSelection struct {
	ID                 string          `json:"id,omitempty"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone,omitempty"`
	Email              string          `json:"email,omitempty"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	WalkIn             bool            `json:"walk_in"`
}

// WalkIn devuelve el cliente de mostrador (sin identidad persistida).
func WalkIn() CustomerSelection {
	return CustomerSelection{Name: "Walk-in Customer", WalkIn: true}
}

// Totals totales derivados del carrito.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentMethod medio de pago.
type PaymentMethod string

// Medios de pago aceptados en caja.
const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// Valid informa si el medio de pago es conocido.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Payment datos de pago. Tendered solo aplica a efectivo.
type Payment struct {
	Method   PaymentMethod
	Tendered decimal.Decimal
}

// Sale venta finalizada. Inmutable: las líneas son copias por valor.
type Sale struct {
	ID             string            `json:"id"`
	TenantID       string            `json:"tenant_id"`
	CashierID      string            `json:"cashier_id"`
	Timestamp      time.Time         `json:"timestamp"`
	Customer       CustomerSelection `json:"customer"`
	Items          []LineItem        `json:"items"`
	TaxRate        decimal.Decimal   `json:"tax_rate"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Tax            decimal.Decimal   `json:"tax"`
	Total          decimal.Decimal   `json:"total"`
	PaymentMethod  PaymentMethod     `json:"payment_method"`
	AmountTendered decimal.Decimal   `json:"amount_tendered"`
	Change         decimal.Decimal   `json:"change"`
}

// SaleSink colaborador externo que persiste la venta. Su política de reintentos es suya.
type SaleSink interface {
	RecordSale(ctx context.Context, sale Sale) error
}

// SaleSinkFunc adaptador de función a SaleSink.
type SaleSinkFunc func(ctx context.Context, sale Sale) error

// RecordSale implementa SaleSink.
func (f SaleSinkFunc) RecordSale(ctx context.Context, sale Sale) error { return f(ctx, sale) }
