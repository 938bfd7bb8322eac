// Package events publica los eventos de venta en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/pkg/config"
)

// SaleCompletedType tipo del evento publicado tras registrar una venta.
const SaleCompletedType = "sale.completed"

var _ sales.EventPublisher = (*KafkaPublisher)(nil)

// SaleCompletedEvent payload JSON del evento.
type SaleCompletedEvent struct {
	Type          string             `json:"type"`
	SaleID        string             `json:"sale_id"`
	TenantID      string             `json:"tenant_id"`
	CashierID     string             `json:"cashier_id"`
	CustomerID    string             `json:"customer_id"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	Items         []SaleCompletedRow `json:"items"`
	OccurredAt    time.Time          `json:"occurred_at"`
}

// SaleCompletedRow línea vendida (para consumidores de inventario y reportes).
type SaleCompletedRow struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// NewSaleCompletedEvent arma el evento desde la venta persistida.
func NewSaleCompletedEvent(s *entity.Sale) SaleCompletedEvent {
	ev := SaleCompletedEvent{
		Type:          SaleCompletedType,
		SaleID:        s.ID,
		TenantID:      s.TenantID,
		CashierID:     s.CashierID,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		TaxTotal:      s.TaxTotal,
		GrandTotal:    s.GrandTotal,
		Items:         make([]SaleCompletedRow, 0, len(s.Items)),
		OccurredAt:    s.Date.UTC(),
	}
	for _, it := range s.Items {
		ev.Items = append(ev.Items, SaleCompletedRow{
			ProductID: it.ProductID, SKU: it.SKU, Quantity: it.Quantity, Subtotal: it.Subtotal,
		})
	}
	return ev
}

// KafkaPublisher escribe en el topic de ventas con clave = tenant, así los eventos
// de una tienda quedan en la misma partición y en orden.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher writer con balanceo por hash de clave y ack de un broker.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SalesTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 5 * time.Second,
	}}
}

// PublishSaleCompleted implementa sales.EventPublisher.
func (p *KafkaPublisher) PublishSaleCompleted(ctx context.Context, s *entity.Sale) error {
	data, err := json.Marshal(NewSaleCompletedEvent(s))
	if err != nil {
		return fmt.Errorf("codificar evento: %w", err)
	}
	msg := kafka.Message{Key: []byte(s.TenantID), Value: data, Time: time.Now().UTC()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar %s: %w", SaleCompletedType, err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
