package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest agrega un producto del catálogo al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateCartItemRequest fija la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// SelectCustomerRequest selecciona un cliente o el de mostrador (walk_in=true o customer_id="walkin").
type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id"`
	WalkIn     bool   `json:"walk_in"`
}

// CheckoutRequest cobro. AmountTendered solo aplica a efectivo.
type CheckoutRequest struct {
	PaymentMethod  string          `json:"payment_method" validate:"required,oneof=cash card upi"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
}

// CartLineResponse línea del carrito con su subtotal.
type CartLineResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku,omitempty"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	StockWarning bool            `json:"stock_warning"`
}

// CartCustomerResponse cliente seleccionado.
type CartCustomerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone,omitempty"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	WalkIn             bool            `json:"walk_in"`
}

// CartResponse estado completo del carrito de la sesión.
type CartResponse struct {
	Status   string                `json:"status"`
	Items    []CartLineResponse    `json:"items"`
	Customer *CartCustomerResponse `json:"customer,omitempty"`
	TaxRate  decimal.Decimal       `json:"tax_rate"`
	Subtotal decimal.Decimal       `json:"subtotal"`
	Tax      decimal.Decimal       `json:"tax"`
	Total    decimal.Decimal       `json:"total"`
}
