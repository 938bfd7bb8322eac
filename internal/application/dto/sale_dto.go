package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku,omitempty"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit,omitempty"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID             string             `json:"id"`
	TenantID       string             `json:"tenant_id"`
	CashierID      string             `json:"cashier_id"`
	CustomerID     string             `json:"customer_id"`
	CustomerName   string             `json:"customer_name"`
	Date           time.Time          `json:"date"`
	TaxRate        decimal.Decimal    `json:"tax_rate"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	Change         decimal.Decimal    `json:"change"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SalesTodayResponse ventas del día con totales.
type SalesTodayResponse struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted_total"`
	Items     []SaleResponse  `json:"items"`
}
