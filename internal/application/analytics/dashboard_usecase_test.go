package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/internal/application/analytics"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

type fakeAnalytics struct {
	today, month repository.SalesMetrics
	top          []repository.TopProductResult
	topErr       error
	calls        []time.Time
}

func (f *fakeAnalytics) GetSalesMetrics(_ context.Context, _ string, from, to time.Time) (repository.SalesMetrics, error) {
	if from.Day() == to.AddDate(0, 0, -1).Day() {
		return f.today, nil
	}
	return f.month, nil
}

func (f *fakeAnalytics) GetTopProducts(_ context.Context, _ string, from, _ time.Time, _ int) ([]repository.TopProductResult, error) {
	f.calls = append(f.calls, from)
	return f.top, f.topErr
}

func (f *fakeAnalytics) CountLowStock(context.Context, string) (int, error)  { return 3, nil }
func (f *fakeAnalytics) CountCustomers(context.Context, string) (int, error) { return 42, nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGetSummary_KPIsDelDiaYDelMes(t *testing.T) {
	repo := &fakeAnalytics{
		today: repository.SalesMetrics{SaleCount: 2, Revenue: d("245.50"), Cost: d("190.00"), TaxTotal: d("44.19")},
		month: repository.SalesMetrics{SaleCount: 9, Revenue: d("1200.00"), Cost: d("900.00"), TaxTotal: d("216.00")},
		top: []repository.TopProductResult{
			{ProductID: "p1", SKU: "UREA", ProductName: "Urea", QuantitySold: d("12"), Revenue: d("384"), Cost: d("300")},
			{ProductID: "p2", SKU: "FREE", ProductName: "Muestra", QuantitySold: d("1"), Revenue: decimal.Zero, Cost: decimal.Zero},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, access.MustNewResolver(access.DefaultTable))
	now := time.Date(2026, time.February, 14, 10, 30, 0, 0, time.UTC)

	out, err := uc.GetSummaryAt(context.Background(), "t1", access.RoleExecutive, now)
	require.NoError(t, err)

	assert.True(t, out.TodaySales.Equal(d("245.50")))
	assert.True(t, out.TodayMargin.Equal(d("55.50")))
	assert.Equal(t, 2, out.TodaySaleCount)
	assert.True(t, out.MonthlySales.Equal(d("1200")))
	assert.True(t, out.MonthlyMargin.Equal(d("300")))
	assert.True(t, out.MonthlyTax.Equal(d("216")))
	assert.Equal(t, 3, out.LowStockCount)
	assert.Equal(t, 42, out.CustomerCount)
	assert.Equal(t, "Febrero 2026", out.DateLabel)
	assert.Equal(t, []string{"dashboard", "customers", "orders", "reports"}, out.Modules)

	require.Len(t, out.TopProducts, 2)
	assert.True(t, out.TopProducts[0].MarginPercentage.Equal(d("21.88")))
	assert.True(t, out.TopProducts[1].MarginPercentage.IsZero(), "sin ingresos no hay margen")

	require.Len(t, repo.calls, 1)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), repo.calls[0])
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	repo := &fakeAnalytics{topErr: errors.New("db caída")}
	uc := analytics.NewDashboardUseCase(repo, access.MustNewResolver(access.DefaultTable))

	_, err := uc.GetSummary(context.Background(), "t1", access.RoleManager)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top productos")
}
