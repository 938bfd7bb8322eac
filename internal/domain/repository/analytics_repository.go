package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregados de ventas de un período.
type SalesMetrics struct {
	SaleCount int
	Revenue   decimal.Decimal // suma de subtotales (sin impuesto)
	Cost      decimal.Decimal // qty × cost_price
	TaxTotal  decimal.Decimal
}

// TopProductResult producto más vendido del período.
type TopProductResult struct {
	ProductID    string
	SKU          string
	ProductName  string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el dashboard. Las implementaciones son read-only.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, tenantID string, from, to time.Time) (SalesMetrics, error)
	GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]TopProductResult, error)
	CountLowStock(ctx context.Context, tenantID string) (int, error)
	CountCustomers(ctx context.Context, tenantID string) (int, error)
}
