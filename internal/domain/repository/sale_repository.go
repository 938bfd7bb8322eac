package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fertipos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// ListByTenant lista cabeceras (sin líneas) en el rango [from, to), más recientes primero.
	ListByTenant(ctx context.Context, tenantID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}
