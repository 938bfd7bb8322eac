package entity

import "time"

// Planes de suscripción de una tienda.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
)

// Tenant representa una tienda (tenant) del sistema multi-tenant.
type Tenant struct {
	ID               string
	ShopName         string
	ShopDomain       string // subdominio único, ej: "agro-ramesh"
	OwnerName        string
	Email            string
	Phone            string
	Address          string
	GSTNumber        string // GSTIN, opcional
	SubscriptionPlan string // basic, premium
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
