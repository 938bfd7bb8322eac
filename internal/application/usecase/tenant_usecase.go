package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fertipos-api/internal/application/auth"
	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/access"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// TenantUseCase alta y administración de tiendas (solo rol admin).
type TenantUseCase struct {
	repo     repository.TenantRepository
	tx       OnboardingTxRunner
	validate *validation.Validator
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository, tx OnboardingTxRunner, validate *validation.Validator) *TenantUseCase {
	return &TenantUseCase{repo: repo, tx: tx, validate: validate}
}

// Register crea la tienda y su primer usuario manager (email y password del formulario).
// Si no se envía shop_domain se deriva del nombre. Devuelve domain.ErrDuplicate si el dominio ya existe.
func (uc *TenantUseCase) Register(ctx context.Context, in dto.RegisterTenantRequest) (*dto.TenantRegisteredResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.ShopDomain = strings.TrimSpace(in.ShopDomain)
	if in.ShopDomain == "" {
		in.ShopDomain = validation.Slugify(in.ShopName)
	}
	if in.SubscriptionPlan == "" {
		in.SubscriptionPlan = entity.PlanBasic
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:               uuid.New().String(),
		ShopName:         strings.TrimSpace(in.ShopName),
		ShopDomain:       in.ShopDomain,
		OwnerName:        in.OwnerName,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		GSTNumber:        in.GSTNumber,
		SubscriptionPlan: in.SubscriptionPlan,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	manager, err := auth.NewUser(tenant.ID, in.Email, in.AdminPassword, in.OwnerName, access.RoleManager)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunOnboarding(ctx, func(tenants repository.TenantRepository, users repository.UserRepository) error {
		existing, err := tenants.GetByDomain(ctx, tenant.ShopDomain)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewFieldError("shop_domain", "el dominio ya está en uso")
		}
		if err := tenants.Create(ctx, tenant); err != nil {
			return err
		}
		return users.Create(ctx, manager)
	})
	if err != nil {
		return nil, err
	}
	return &dto.TenantRegisteredResponse{Tenant: *toTenantResponse(tenant), Manager: *auth.ToUserResponse(manager)}, nil
}

// GetByID obtiene una tienda. (nil, nil) si no existe.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil || tenant == nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Update aplica los campos enviados.
func (uc *TenantUseCase) Update(ctx context.Context, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil || tenant == nil {
		return nil, err
	}
	if in.ShopName != nil {
		tenant.ShopName = *in.ShopName
	}
	if in.OwnerName != nil {
		tenant.OwnerName = *in.OwnerName
	}
	if in.Email != nil {
		tenant.Email = strings.ToLower(*in.Email)
	}
	if in.Phone != nil {
		tenant.Phone = *in.Phone
	}
	if in.Address != nil {
		tenant.Address = *in.Address
	}
	if in.GSTNumber != nil {
		tenant.GSTNumber = *in.GSTNumber
	}
	if in.SubscriptionPlan != nil {
		tenant.SubscriptionPlan = *in.SubscriptionPlan
	}
	tenant.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// SetStatus activa o suspende la tienda. Una tienda suspendida no puede operar.
func (uc *TenantUseCase) SetStatus(ctx context.Context, id string, in dto.TenantStatusRequest) (*dto.TenantResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil || tenant == nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, *in.IsActive); err != nil {
		return nil, err
	}
	tenant.IsActive = *in.IsActive
	return toTenantResponse(tenant), nil
}

// List lista tiendas con paginación.
func (uc *TenantUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TenantListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina la tienda. domain.ErrNotFound si no existe.
func (uc *TenantUseCase) Delete(ctx context.Context, id string) error {
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:               t.ID,
		ShopName:         t.ShopName,
		ShopDomain:       t.ShopDomain,
		OwnerName:        t.OwnerName,
		Email:            t.Email,
		Phone:            t.Phone,
		Address:          t.Address,
		GSTNumber:        t.GSTNumber,
		SubscriptionPlan: t.SubscriptionPlan,
		IsActive:         t.IsActive,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
