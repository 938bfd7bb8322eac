package usecase

import (
	"context"

	"github.com/jhoicas/fertipos-api/internal/application/auth"
	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// UserUseCase consultas de usuarios de una tienda (módulo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario de la tienda. (nil, nil) si no existe o es de otra tienda.
func (uc *UserUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.TenantID != tenantID {
		return nil, nil
	}
	return auth.ToUserResponse(user), nil
}

// ListByTenant lista los usuarios de la tienda.
func (uc *UserUseCase) ListByTenant(ctx context.Context, tenantID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}
