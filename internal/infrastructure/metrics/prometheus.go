// Package metrics expone contadores Prometheus del punto de venta y del servidor HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/sales"
)

const namespace = "fertipos"

var _ sales.Metrics = (*POSMetrics)(nil)

// POSMetrics implementación Prometheus de sales.Metrics.
type POSMetrics struct {
	SalesTotal      *prometheus.CounterVec
	RevenueTotal    *prometheus.CounterVec
	CheckoutFailure *prometheus.CounterVec
	CartOps         *prometheus.CounterVec
}

// NewPOSMetrics registra los colectores en reg (prometheus.DefaultRegisterer en producción).
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	m := &POSMetrics{
		SalesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "sales_total",
			Help:      "Ventas registradas.",
		}, []string{"tenant", "method"}),
		RevenueTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "revenue_total",
			Help:      "Importe cobrado (con impuesto).",
		}, []string{"tenant"}),
		CheckoutFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "checkout_failures_total",
			Help:      "Cobros rechazados por motivo.",
		}, []string{"reason"}),
		CartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pos",
			Name:      "cart_operations_total",
			Help:      "Operaciones sobre el carrito.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.SalesTotal, m.RevenueTotal, m.CheckoutFailure, m.CartOps)
	return m
}

// SaleCompleted cuenta la venta y suma el total cobrado.
func (m *POSMetrics) SaleCompleted(tenantID, method string, total decimal.Decimal) {
	m.SalesTotal.WithLabelValues(tenantID, method).Inc()
	f, _ := total.Float64()
	m.RevenueTotal.WithLabelValues(tenantID).Add(f)
}

func (m *POSMetrics) CheckoutFailed(reason string) {
	m.CheckoutFailure.WithLabelValues(reason).Inc()
}

func (m *POSMetrics) CartOperation(op string) {
	m.CartOps.WithLabelValues(op).Inc()
}

// HTTPMetrics peticiones y latencia por ruta.
type HTTPMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewHTTPMetrics registra los colectores HTTP en reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total de peticiones HTTP.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "Latencia de peticiones HTTP en milisegundos.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	reg.MustRegister(requests, latency)
	return &HTTPMetrics{Requests: requests, LatencyMS: latency}
}

// Handler endpoint /metrics del registro por defecto.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor endpoint /metrics de un registro concreto.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
