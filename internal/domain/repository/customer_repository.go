package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, tenantID, phone string) (*entity.Customer, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error)
	// Search busca por nombre, teléfono o email (ILIKE).
	Search(ctx context.Context, tenantID, term string, limit int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// AddPurchase acumula el total comprado por el cliente (se llama dentro de la tx de venta).
	AddPurchase(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
	Delete(ctx context.Context, tenantID, id string) error
}
