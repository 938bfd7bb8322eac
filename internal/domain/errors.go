package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTenantSuspended    = errors.New("la tienda está suspendida")

	// Taxonomía del punto de venta.
	ErrValidation         = errors.New("validación fallida")
	ErrPreconditionFailed = errors.New("precondición no cumplida")
	ErrInsufficientTender = errors.New("monto recibido insuficiente")
)

// FieldError error de validación asociado a un campo concreto (feedback por campo en la UI).
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Unwrap permite errors.Is(err, ErrValidation).
func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldError construye un error de validación por campo.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
