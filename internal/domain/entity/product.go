package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto de una tienda de insumos agrícolas.
var ProductCategories = []string{
	"fertilizer", "pesticide", "herbicide", "fungicide",
	"growth_regulator", "micronutrient", "bio_fertilizer",
}

// Unidades de medida admitidas.
var ProductUnits = []string{"kg", "g", "l", "ml", "packet", "bottle", "bag"}

// Product representa un producto del catálogo de la tienda.
// CurrentStock se descuenta al registrar cada venta.
type Product struct {
	ID            string
	TenantID      string
	SKU           string // código único por tienda
	Name          string
	Description   string
	Category      string
	Brand         string
	CostPrice     decimal.Decimal
	SalePrice     decimal.Decimal
	CurrentStock  decimal.Decimal
	MinStockAlert decimal.Decimal
	Unit          string
	HSNCode       string // clasificación tributaria, dato opaco
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el stock está en o por debajo del umbral de alerta.
func (p *Product) LowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockAlert)
}
