package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// TxSaleRecorder implementa pos.SaleSink sobre una transacción de base de datos.
// Si cualquier paso falla se hace rollback y el carrito queda intacto.
type TxSaleRecorder struct {
	tx       SaleTxRunner
	recorded *entity.Sale
}

var _ pos.SaleSink = (*TxSaleRecorder)(nil)

// NewTxSaleRecorder construye el sink.
func NewTxSaleRecorder(tx SaleTxRunner) *TxSaleRecorder {
	return &TxSaleRecorder{tx: tx}
}

// RecordSale descuenta stock por línea, inserta la venta y acumula el total del cliente.
func (r *TxSaleRecorder) RecordSale(ctx context.Context, sale pos.Sale) error {
	ent := ToEntity(sale)
	err := r.tx.RunSale(ctx, func(salesRepo repository.SaleRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) error {
		for _, it := range sale.Items {
			if err := productRepo.DecrementStock(ctx, sale.TenantID, it.Product.ID, decimal.NewFromInt(int64(it.Quantity))); err != nil {
				return err
			}
		}
		if err := salesRepo.Create(ctx, ent); err != nil {
			return err
		}
		if !sale.Customer.WalkIn {
			return customerRepo.AddPurchase(ctx, sale.TenantID, sale.Customer.ID, sale.Total)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.recorded = ent
	return nil
}

// Recorded venta persistida por la última llamada exitosa.
func (r *TxSaleRecorder) Recorded() *entity.Sale { return r.recorded }

// ToEntity convierte la venta del motor de caja a la entidad persistible.
func ToEntity(sale pos.Sale) *entity.Sale {
	customerID := sale.Customer.ID
	if sale.Customer.WalkIn || customerID == "" {
		customerID = entity.WalkInCustomerID
	}
	ent := &entity.Sale{
		ID:             sale.ID,
		TenantID:       sale.TenantID,
		CashierID:      sale.CashierID,
		CustomerID:     customerID,
		CustomerName:   sale.Customer.Name,
		Date:           sale.Timestamp,
		TaxRate:        sale.TaxRate,
		Subtotal:       sale.Subtotal,
		TaxTotal:       sale.Tax,
		GrandTotal:     sale.Total,
		PaymentMethod:  string(sale.PaymentMethod),
		AmountTendered: sale.AmountTendered,
		Change:         sale.Change,
		CreatedAt:      time.Now(),
		Items:          make([]entity.SaleItem, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		ent.Items = append(ent.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   it.Product.ID,
			SKU:         it.Product.SKU,
			ProductName: it.Product.Name,
			Unit:        it.Product.UnitMeasure,
			HSNCode:     it.Product.HSNCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.Product.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return ent
}
