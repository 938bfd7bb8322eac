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

const (
	defaultCategory      = "fertilizer"
	defaultUnit          = "kg"
	searchLimit          = 20
	defaultMinStockAlert = 10
)

// ProductUseCase casos de uso CRUD del catálogo de la tienda.
type ProductUseCase struct {
	repo     repository.ProductRepository
	validate *validation.Validator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, validate *validation.Validator) *ProductUseCase {
	return &ProductUseCase{repo: repo, validate: validate}
}

// Create crea un producto. Sin SKU se genera uno. Devuelve domain.ErrDuplicate si el SKU ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	minAlert := decimal.NewFromInt(defaultMinStockAlert)
	if in.MinStockAlert != nil {
		minAlert = *in.MinStockAlert
	}
	if err := checkPrices(in.CostPrice, in.SalePrice, in.CurrentStock, minAlert); err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = "SKU-" + strings.ToUpper(uuid.New().String()[:8])
	}
	existing, err := uc.repo.GetBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		SKU:           sku,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      orDefault(in.Category, defaultCategory),
		Brand:         in.Brand,
		CostPrice:     in.CostPrice,
		SalePrice:     in.SalePrice,
		CurrentStock:  in.CurrentStock,
		MinStockAlert: minAlert,
		Unit:          orDefault(in.Unit, defaultUnit),
		HSNCode:       in.HSNCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la tienda. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica los campos enviados y vuelve a validar la relación costo/venta.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || product == nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.CurrentStock != nil {
		product.CurrentStock = *in.CurrentStock
	}
	if in.MinStockAlert != nil {
		product.MinStockAlert = *in.MinStockAlert
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.HSNCode != nil {
		product.HSNCode = *in.HSNCode
	}
	if err := checkPrices(product.CostPrice, product.SalePrice, product.CurrentStock, product.MinStockAlert); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la tienda con paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: toProductResponses(list), Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Search busca por nombre, SKU o marca (catálogo del punto de venta).
func (uc *ProductUseCase) Search(ctx context.Context, tenantID, term string) ([]dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []dto.ProductResponse{}, nil
	}
	list, err := uc.repo.Search(ctx, tenantID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// LowStock productos en o por debajo del umbral de alerta.
func (uc *ProductUseCase) LowStock(ctx context.Context, tenantID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx, tenantID, 100)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// checkPrices reglas del formulario de producto: importes no negativos y venta > costo.
func checkPrices(cost, sale, stock, minAlert decimal.Decimal) error {
	var errs []*domain.FieldError
	if cost.IsNegative() {
		errs = append(errs, domain.NewFieldError("cost_price", "debe ser mayor o igual a 0"))
	}
	if !sale.IsPositive() {
		errs = append(errs, domain.NewFieldError("sale_price", "debe ser mayor a 0"))
	} else if sale.LessThanOrEqual(cost) {
		errs = append(errs, domain.NewFieldError("sale_price", "el precio de venta debe ser mayor al costo"))
	}
	if stock.IsNegative() {
		errs = append(errs, domain.NewFieldError("current_stock", "debe ser mayor o igual a 0"))
	}
	if minAlert.IsNegative() {
		errs = append(errs, domain.NewFieldError("min_stock_alert", "debe ser mayor o igual a 0"))
	}
	return validation.Join(errs...)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		CurrentStock:  p.CurrentStock,
		MinStockAlert: p.MinStockAlert,
		LowStock:      p.LowStock(),
		Unit:          p.Unit,
		HSNCode:       p.HSNCode,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
