package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/application/dto"
	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
	"github.com/jhoicas/fertipos-api/internal/domain/entity"
	"github.com/jhoicas/fertipos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes de la tienda.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	validate *validation.Validator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, validate *validation.Validator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, validate: validate}
}

// Create crea un cliente. El teléfono es único por tienda (domain.ErrDuplicate).
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.GSTNumber = strings.ToUpper(strings.TrimSpace(in.GSTNumber))
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	phone := validation.NormalizePhone(in.Phone)
	existing, err := uc.repo.GetByPhone(ctx, tenantID, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		Name:               strings.TrimSpace(in.Name),
		Phone:              phone,
		Email:              in.Email,
		Address:            in.Address,
		GSTNumber:          in.GSTNumber,
		OutstandingBalance: decimal.Zero,
		TotalPurchases:     decimal.Zero,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente. (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || customer == nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update aplica los campos enviados.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.GSTNumber != nil {
		g := strings.ToUpper(strings.TrimSpace(*in.GSTNumber))
		in.GSTNumber = &g
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.OutstandingBalance != nil && in.OutstandingBalance.IsNegative() {
		return nil, domain.NewFieldError("outstanding_balance", "debe ser mayor o igual a 0")
	}
	customer, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || customer == nil {
		return nil, err
	}
	if in.Name != nil {
		customer.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		customer.Phone = validation.NormalizePhone(*in.Phone)
	}
	if in.Email != nil {
		customer.Email = strings.ToLower(*in.Email)
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.GSTNumber != nil {
		customer.GSTNumber = *in.GSTNumber
	}
	if in.OutstandingBalance != nil {
		customer.OutstandingBalance = *in.OutstandingBalance
	}
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la tienda.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Items: toCustomerResponses(list), Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Search busca por nombre, teléfono o email (selector de cliente del punto de venta).
func (uc *CustomerUseCase) Search(ctx context.Context, tenantID, term string) ([]dto.CustomerResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.CustomerResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, tenantID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return toCustomerResponses(list), nil
}

// Delete elimina un cliente. domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	customer, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

func toCustomerResponses(list []*entity.Customer) []dto.CustomerResponse {
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:                 c.ID,
		TenantID:           c.TenantID,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Address:            c.Address,
		GSTNumber:          c.GSTNumber,
		OutstandingBalance: c.OutstandingBalance,
		TotalPurchases:     c.TotalPurchases,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
