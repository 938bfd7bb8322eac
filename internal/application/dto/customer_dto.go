package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Phone     string `json:"phone" validate:"required,phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	GSTNumber string `json:"gst_number" validate:"omitempty,gstin"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Phone              *string          `json:"phone" validate:"omitempty,phone"`
	Email              *string          `json:"email" validate:"omitempty,email"`
	Address            *string          `json:"address" validate:"omitempty,max=500"`
	GSTNumber          *string          `json:"gst_number" validate:"omitempty,gstin"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance"`
	IsActive           *bool            `json:"is_active"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                 string          `json:"id"`
	TenantID           string          `json:"tenant_id"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email,omitempty"`
	Address            string          `json:"address,omitempty"`
	GSTNumber          string          `json:"gst_number,omitempty"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	TotalPurchases     decimal.Decimal `json:"total_purchases"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
