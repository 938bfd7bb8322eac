package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, tenant_id, cashier_id, customer_id, customer_name, date, tax_rate, subtotal, tax_total,
	grand_total, payment_method, amount_tendered, change_amount, created_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y sus líneas. Las líneas se insertan en un batch.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.CashierID, s.CustomerID, s.CustomerName, s.Date, s.TaxRate, s.Subtotal, s.TaxTotal,
		s.GrandTotal, s.PaymentMethod, s.AmountTendered, s.Change, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(s.Items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, it := range s.Items {
		batch.Queue(`
			INSERT INTO sale_items (id, sale_id, product_id, sku, product_name, unit, hsn_code, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, s.ID, it.ProductID, it.SKU, it.ProductName, it.Unit, it.HSNCode, it.Quantity, it.UnitPrice, it.Subtotal)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range s.Items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas en el orden en que se cobraron.
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, sku, product_name, unit, hsn_code, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.SKU, &it.ProductName, &it.Unit, &it.HSNCode,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

// ListByTenant cabeceras del rango [from, to), más recientes primero.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE tenant_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC LIMIT $4 OFFSET $5`,
		tenantID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.TenantID, &s.CashierID, &s.CustomerID, &s.CustomerName, &s.Date, &s.TaxRate,
		&s.Subtotal, &s.TaxTotal, &s.GrandTotal, &s.PaymentMethod, &s.AmountTendered, &s.Change, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
