package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. Los importes se validan en el caso de uso.
type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"omitempty,max=64"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Description   string           `json:"description" validate:"omitempty,max=1000"`
	Category      string           `json:"category" validate:"omitempty,oneof=fertilizer pesticide herbicide fungicide growth_regulator micronutrient bio_fertilizer"`
	Brand         string           `json:"brand" validate:"omitempty,max=100"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	CurrentStock  decimal.Decimal  `json:"current_stock"`
	MinStockAlert *decimal.Decimal `json:"min_stock_alert"`
	Unit          string           `json:"unit" validate:"omitempty,oneof=kg g l ml packet bottle bag"`
	HSNCode       string           `json:"hsn_code" validate:"omitempty,max=16"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	Category      *string          `json:"category" validate:"omitempty,oneof=fertilizer pesticide herbicide fungicide growth_regulator micronutrient bio_fertilizer"`
	Brand         *string          `json:"brand" validate:"omitempty,max=100"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	CurrentStock  *decimal.Decimal `json:"current_stock"`
	MinStockAlert *decimal.Decimal `json:"min_stock_alert"`
	Unit          *string          `json:"unit" validate:"omitempty,oneof=kg g l ml packet bottle bag"`
	HSNCode       *string          `json:"hsn_code" validate:"omitempty,max=16"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockAlert decimal.Decimal `json:"min_stock_alert"`
	LowStock      bool            `json:"low_stock"`
	Unit          string          `json:"unit"`
	HSNCode       string          `json:"hsn_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
