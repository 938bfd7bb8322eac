// Package sales orquesta el punto de venta: carrito por sesión, cobro y
// consulta de ventas registradas.
package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// CartStore guarda el estado del carrito de cada sesión de caja.
// Load devuelve ok=false si la sesión no tiene carrito guardado.
type CartStore interface {
	Load(ctx context.Context, key string) (pos.State, bool, error)
	Save(ctx context.Context, key string, st pos.State) error
	Delete(ctx context.Context, key string) error
}

// SaleTxRunner ejecuta el registro de una venta en una sola transacción:
// descuento de stock, cabecera con líneas y acumulado del cliente.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		salesRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// EventPublisher publica la venta confirmada. Se llama después del commit.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, sale *entity.Sale) error
}

// ReceiptRenderer genera el recibo imprimible de una venta.
type ReceiptRenderer interface {
	RenderReceipt(sale *entity.Sale, shop *entity.Tenant) ([]byte, error)
}

// Metrics instrumentación del punto de venta.
type Metrics interface {
	SaleCompleted(tenantID, method string, total decimal.Decimal)
	CheckoutFailed(reason string)
	CartOperation(op string)
}

// NopPublisher descarta los eventos (sin broker configurado).
type NopPublisher struct{}

// PublishSaleCompleted implementa EventPublisher.
func (NopPublisher) PublishSaleCompleted(context.Context, *entity.Sale) error { return nil }

// NopMetrics descarta las métricas.
type NopMetrics struct{}

func (NopMetrics) SaleCompleted(string, string, decimal.Decimal) {}
func (NopMetrics) CheckoutFailed(string)                         {}
func (NopMetrics) CartOperation(string)                          {}

// Session identifica la sesión de caja: un carrito por usuario y tienda.
type Session struct {
	TenantID string
	UserID   string
}

// Key clave del carrito en el CartStore.
func (s Session) Key() string { return s.TenantID + ":" + s.UserID }
