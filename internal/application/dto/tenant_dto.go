package dto

import "time"

// RegisterTenantRequest alta de una tienda junto con su primer usuario manager.
type RegisterTenantRequest struct {
	ShopName         string `json:"shop_name" validate:"required,min=1,max=200"`
	ShopDomain       string `json:"shop_domain" validate:"required,max=63,shopdomain"`
	OwnerName        string `json:"owner_name" validate:"required,max=200"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,phone"`
	Address          string `json:"address" validate:"omitempty,max=500"`
	GSTNumber        string `json:"gst_number" validate:"omitempty,gstin"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,oneof=basic premium"`
	AdminPassword    string `json:"admin_password" validate:"required,min=8"`
	ConfirmPassword  string `json:"confirm_password" validate:"required,eqfield=AdminPassword"`
}

// UpdateTenantRequest actualización parcial de una tienda.
type UpdateTenantRequest struct {
	ShopName         *string `json:"shop_name" validate:"omitempty,min=1,max=200"`
	OwnerName        *string `json:"owner_name" validate:"omitempty,max=200"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,phone"`
	Address          *string `json:"address" validate:"omitempty,max=500"`
	GSTNumber        *string `json:"gst_number" validate:"omitempty,gstin"`
	SubscriptionPlan *string `json:"subscription_plan" validate:"omitempty,oneof=basic premium"`
}

// TenantStatusRequest body de PATCH /api/tenants/:id/status.
type TenantStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// TenantResponse salida de una tienda.
type TenantResponse struct {
	ID               string    `json:"id"`
	ShopName         string    `json:"shop_name"`
	ShopDomain       string    `json:"shop_domain"`
	OwnerName        string    `json:"owner_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	GSTNumber        string    `json:"gst_number,omitempty"`
	SubscriptionPlan string    `json:"subscription_plan"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TenantRegisteredResponse tienda creada más su manager.
type TenantRegisteredResponse struct {
	Tenant  TenantResponse `json:"tenant"`
	Manager UserResponse   `json:"manager"`
}

// TenantListResponse lista paginada de tiendas.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
