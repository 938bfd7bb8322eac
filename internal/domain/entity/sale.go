package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomerID identificador del cliente de mostrador en ventas sin cliente persistido.
const WalkInCustomerID = "walkin"

// Sale cabecera de una venta registrada en caja.
type Sale struct {
	ID             string
	TenantID       string
	CashierID      string
	CustomerID     string // WalkInCustomerID si es cliente de mostrador
	CustomerName   string
	Date           time.Time
	TaxRate        decimal.Decimal
	Subtotal       decimal.Decimal
	TaxTotal       decimal.Decimal
	GrandTotal     decimal.Decimal
	PaymentMethod  string // cash, card, upi
	AmountTendered decimal.Decimal
	Change         decimal.Decimal
	CreatedAt      time.Time
	Items          []SaleItem
}

// SaleItem línea de una venta con el precio vigente al momento de vender.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	SKU         string
	ProductName string
	Unit        string
	HSNCode     string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
