package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock descuenta qty del stock actual. Devuelve domain.ErrNotFound si el producto no existe.
	DecrementStock(ctx context.Context, tenantID, id string, qty decimal.Decimal) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error)
	Search(ctx context.Context, tenantID, term string, limit int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, tenantID string, limit int) ([]*entity.Product, error)
	Delete(ctx context.Context, tenantID, id string) error
}
