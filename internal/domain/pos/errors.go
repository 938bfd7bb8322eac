package pos

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fertipos-api/internal/domain"
)

// Motivos de rechazo del carrito. Todos envuelven un error de la taxonomía de dominio
// para que el caller pueda ramificar con errors.Is.
var (
	ErrInvalidQuantity      = fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrValidation)
	ErrItemNotFound         = fmt.Errorf("%w: el producto no está en el carrito", domain.ErrValidation)
	ErrInvalidProduct       = fmt.Errorf("%w: producto sin id o con precio negativo", domain.ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: medio de pago desconocido", domain.ErrValidation)
	ErrInvalidTender        = fmt.Errorf("%w: el monto recibido debe ser positivo y con hasta 2 decimales", domain.ErrValidation)
	ErrInvalidState         = fmt.Errorf("%w: estado del carrito inconsistente", domain.ErrValidation)
	ErrEmptyCart            = fmt.Errorf("%w: el carrito está vacío", domain.ErrPreconditionFailed)
	ErrNoCustomer           = fmt.Errorf("%w: no hay cliente seleccionado", domain.ErrPreconditionFailed)
	ErrNilSink              = fmt.Errorf("%w: no hay destino para registrar la venta", domain.ErrPreconditionFailed)
)

// TenderError pago en efectivo con monto recibido menor al total.
type TenderError struct {
	Total    decimal.Decimal
	Tendered decimal.Decimal
}

func (e *TenderError) Error() string {
	return fmt.Sprintf("monto recibido %s menor al total %s (faltan %s)",
		e.Tendered.StringFixed(2), e.Total.StringFixed(2), e.Shortfall().StringFixed(2))
}

// Shortfall cuánto falta para cubrir el total.
func (e *TenderError) Shortfall() decimal.Decimal { return e.Total.Sub(e.Tendered) }

// Unwrap permite errors.Is(err, domain.ErrInsufficientTender).
func (e *TenderError) Unwrap() error { return domain.ErrInsufficientTender }
