package usecase

import (
	"context"

	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// OnboardingTxRunner ejecuta el alta de una tienda y su manager en una sola transacción.
type OnboardingTxRunner interface {
	RunOnboarding(ctx context.Context, fn func(tenants repository.TenantRepository, users repository.UserRepository) error) error
}
