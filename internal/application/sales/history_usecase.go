package sales

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
	"github.com/jhoicas/fertipos-api/pkg/money"
)

const (
	todayLimit = 500

	exportBatch   = 500
	exportMaxRows = 10000
)

// SalesUseCase consultas sobre ventas registradas y recibos.
type SalesUseCase struct {
	repo      repository.SaleRepository
	tenants   repository.TenantRepository
	renderer  ReceiptRenderer
	formatter *money.Formatter
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(repo repository.SaleRepository, tenants repository.TenantRepository, renderer ReceiptRenderer, formatter *money.Formatter) *SalesUseCase {
	return &SalesUseCase{repo: repo, tenants: tenants, renderer: renderer, formatter: formatter}
}

// List ventas del rango [from, to), más recientes primero. Sin rango: últimos 30 días.
func (uc *SalesUseCase) List(ctx context.Context, tenantID string, from, to time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	from, to, err := saleRange(from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByTenant(ctx, tenantID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Export CSV de las ventas del rango [from, to) con los mismos valores por defecto que List.
// Recorre el repositorio por lotes hasta exportMaxRows filas.
func (uc *SalesUseCase) Export(ctx context.Context, tenantID string, from, to time.Time) ([]byte, error) {
	from, to, err := saleRange(from, to)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "fecha", "cajero", "cliente_id", "cliente", "metodo_pago",
		"subtotal", "impuesto", "total", "recibido", "cambio"})
	for offset := 0; offset < exportMaxRows; offset += exportBatch {
		list, err := uc.repo.ListByTenant(ctx, tenantID, from, to, exportBatch, offset)
		if err != nil {
			return nil, err
		}
		for _, s := range list {
			_ = w.Write([]string{
				s.ID, s.Date.Format(time.RFC3339), s.CashierID, s.CustomerID, s.CustomerName, s.PaymentMethod,
				s.Subtotal.StringFixed(2), s.TaxTotal.StringFixed(2), s.GrandTotal.StringFixed(2),
				s.AmountTendered.StringFixed(2), s.Change.StringFixed(2),
			})
		}
		if len(list) < exportBatch {
			break
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

func saleRange(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return from, to, domain.NewFieldError("from", "debe ser anterior a to")
	}
	return from, to, nil
}

// Today ventas del día de now con el total formateado en la moneda de la tienda.
func (uc *SalesUseCase) Today(ctx context.Context, tenantID string, now time.Time) (*dto.SalesTodayResponse, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	list, err := uc.repo.ListByTenant(ctx, tenantID, start, start.AddDate(0, 0, 1), todayLimit, 0)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		total = total.Add(s.GrandTotal)
		items = append(items, *ToSaleResponse(s))
	}
	return &dto.SalesTodayResponse{
		Date:      start.Format("2006-01-02"),
		Count:     len(items),
		Total:     total,
		Formatted: uc.formatter.Format(total),
		Items:     items,
	}, nil
}

// GetByID venta con sus líneas. (nil, nil) si no existe.
func (uc *SalesUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || sale == nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// Receipt PDF del recibo. domain.ErrNotFound si la venta no existe.
func (uc *SalesUseCase) Receipt(ctx context.Context, tenantID, id string) ([]byte, error) {
	sale, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	shop, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	return uc.renderer.RenderReceipt(sale, shop)
}

// ToSaleResponse convierte la entidad a DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SaleResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		CashierID:      s.CashierID,
		CustomerID:     s.CustomerID,
		CustomerName:   s.CustomerName,
		Date:           s.Date,
		TaxRate:        s.TaxRate,
		Subtotal:       s.Subtotal,
		Tax:            s.TaxTotal,
		Total:          s.GrandTotal,
		PaymentMethod:  s.PaymentMethod,
		AmountTendered: s.AmountTendered,
		Change:         s.Change,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			SKU:         it.SKU,
			ProductName: it.ProductName,
			Unit:        it.Unit,
			HSNCode:     it.HSNCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}
