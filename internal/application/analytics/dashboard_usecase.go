// Package analytics contiene los casos de uso del dashboard de la tienda.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget del dashboard

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	resolver      *access.Resolver
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, resolver *access.Resolver) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, resolver: resolver}
}

// GetSummary resumen de la tienda al momento actual.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tenantID string, role access.Role) (*dto.DashboardSummaryDTO, error) {
	return uc.GetSummaryAt(ctx, tenantID, role, time.Now())
}

// GetSummaryAt construye el DashboardSummaryDTO tomando now como referencia.
//
// Cinco consultas en paralelo:
//  1. GetSalesMetrics(hoy)
//  2. GetSalesMetrics(mes)
//  3. GetTopProducts(mes, top 5)
//  4. CountLowStock
//  5. CountCustomers
func (uc *DashboardUseCase) GetSummaryAt(ctx context.Context, tenantID string, role access.Role, now time.Time) (*dto.DashboardSummaryDTO, error) {
	// Rangos semiabiertos [inicio, fin)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type metricsResult struct {
		m   repository.SalesMetrics
		err error
	}
	type topResult struct {
		rows []repository.TopProductResult
		err  error
	}
	type countResult struct {
		n   int
		err error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan countResult, 1)
	custCh := make(chan countResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, tenantID, todayStart, todayEnd)
		todayCh <- metricsResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, tenantID, monthStart, todayEnd)
		monthCh <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopProducts(ctx, tenantID, monthStart, todayEnd, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx, tenantID)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountCustomers(ctx, tenantID)
		custCh <- countResult{n, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	low := <-lowCh
	cust := <-custCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if cust.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cust.err)
	}

	mods := uc.resolver.AccessibleModules(role)
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = string(m)
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:     today.m.Revenue.Round(2),
		TodayMargin:    today.m.Revenue.Sub(today.m.Cost).Round(2),
		TodaySaleCount: today.m.SaleCount,
		MonthlySales:   month.m.Revenue.Round(2),
		MonthlyMargin:  month.m.Revenue.Sub(month.m.Cost).Round(2),
		MonthlyTax:     month.m.TaxTotal.Round(2),
		LowStockCount:  low.n,
		CustomerCount:  cust.n,
		TopProducts:    toTopProducts(top.rows),
		Modules:        names,
		DateLabel:      monthLabel(now),
	}, nil
}

func toTopProducts(rows []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		margin := decimal.Zero
		if r.Revenue.IsPositive() {
			margin = r.Revenue.Sub(r.Cost).Div(r.Revenue).Mul(hundred).Round(2)
		}
		out = append(out, dto.TopProductDTO{
			ProductID:        r.ProductID,
			SKU:              r.SKU,
			ProductName:      r.ProductName,
			QuantitySold:     r.QuantitySold,
			TotalRevenue:     r.Revenue.Round(2),
			MarginPercentage: margin,
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
