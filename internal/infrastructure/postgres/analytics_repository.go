package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesMetrics cantidad de ventas, ingresos sin impuesto, costo y GST del rango [from, to).
// El costo usa el cost_price vigente del producto (qty × cost_price).
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, tenantID string, from, to time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COUNT(*)                          AS sale_count,
	    COALESCE(SUM(s.subtotal), 0)      AS revenue,
	    COALESCE(SUM(s.tax_total), 0)     AS tax_total,
	    COALESCE(SUM(c.cost), 0)          AS cost
	FROM sales s
	LEFT JOIN LATERAL (
	    SELECT SUM(i.quantity * COALESCE(p.cost_price, 0)) AS cost
	    FROM sale_items i
	    LEFT JOIN products p ON p.id = i.product_id
	    WHERE i.sale_id = s.id
	) c ON TRUE
	WHERE s.tenant_id = $1
	  AND s.date >= $2 AND s.date < $3`

	var m repository.SalesMetrics
	err := r.pool.QueryRow(ctx, query, tenantID, from, to).Scan(&m.SaleCount, &m.Revenue, &m.TaxTotal, &m.Cost)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("analytics: sales metrics: %w", err)
	}
	return m, nil
}

// GetTopProducts productos más vendidos por ingresos en el rango [from, to).
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, tenantID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    i.product_id,
	    MAX(i.sku)                                      AS sku,
	    MAX(i.product_name)                             AS product_name,
	    SUM(i.quantity)                                 AS quantity_sold,
	    SUM(i.subtotal)                                 AS revenue,
	    SUM(i.quantity * COALESCE(p.cost_price, 0))     AS cost
	FROM sales s
	JOIN sale_items i      ON i.sale_id = s.id
	LEFT JOIN products p   ON p.id      = i.product_id
	WHERE s.tenant_id = $1
	  AND s.date >= $2 AND s.date < $3
	GROUP BY i.product_id
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, tenantID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top products: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.ProductName, &t.QuantitySold, &t.Revenue, &t.Cost); err != nil {
			return nil, fmt.Errorf("analytics: scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountLowStock productos en o por debajo del umbral de alerta.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE tenant_id = $1 AND current_stock <= min_stock_alert`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics: low stock: %w", err)
	}
	return n, nil
}

// CountCustomers clientes activos de la tienda.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE tenant_id = $1 AND is_active`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics: customers: %w", err)
	}
	return n, nil
}
