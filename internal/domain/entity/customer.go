package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la tienda.
type Customer struct {
	ID                 string
	TenantID           string
	Name               string
	Phone              string
	Email              string
	Address            string
	GSTNumber          string
	OutstandingBalance decimal.Decimal // saldo pendiente (fiado)
	TotalPurchases     decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
