package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, más el top de productos del mes.
type DashboardSummaryDTO struct {
	TodaySales     decimal.Decimal `json:"today_sales"` // sin impuesto
	TodayMargin    decimal.Decimal `json:"today_margin"`
	TodaySaleCount int             `json:"today_sale_count"`
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin  decimal.Decimal `json:"monthly_margin"`
	MonthlyTax     decimal.Decimal `json:"monthly_tax"`
	LowStockCount  int             `json:"low_stock_count"`
	CustomerCount  int             `json:"customer_count"`
	TopProducts    []TopProductDTO `json:"top_products"`
	Modules        []string        `json:"modules"` // módulos visibles para el rol
	DateLabel      string          `json:"date_label"`
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	ProductName      string          `json:"product_name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // (revenue - cost) / revenue * 100
}
