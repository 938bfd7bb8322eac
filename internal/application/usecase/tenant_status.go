package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// TenantStatusService informa si una tienda puede operar.
// Es el único punto de la aplicación que conoce la regla de suspensión.
type TenantStatusService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantStatusService construye el servicio.
func NewTenantStatusService(tenantRepo repository.TenantRepository) *TenantStatusService {
	return &TenantStatusService{tenantRepo: tenantRepo}
}

// IsActive devuelve false (sin error) si la tienda no existe o está suspendida.
// Devuelve error solo ante fallos de infraestructura.
func (s *TenantStatusService) IsActive(ctx context.Context, tenantID string) (bool, error) {
	if tenantID == "" {
		return false, fmt.Errorf("tenant: tenantID es obligatorio")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return tenant != nil && tenant.IsActive, nil
}
