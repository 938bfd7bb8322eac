package pos

import "github.com/shopspring/decimal"

// State forma serializable del carrito para los almacenes de sesión.
type State struct {
	Status   Status             `json:"status"`
	Items    []LineItem         `json:"items"`
	Customer *CustomerSelection `json:"customer,omitempty"`
	// TaxRate tasa con la que se abrió el carrito. Si falta se usa la de las opciones.
	TaxRate decimal.NullDecimal `json:"tax_rate"`
}

// Snapshot exporta el estado actual (copias, no referencias).
func (c *Cart) Snapshot() State {
	st := State{
		Status:  c.status,
		Items:   c.Items(),
		TaxRate: decimal.NullDecimal{Decimal: c.taxRate, Valid: true},
	}
	if c.customer != nil {
		sel := *c.customer
		st.Customer = &sel
	}
	return st
}

// Restore reconstruye un carrito desde un State guardado. Valida las invariantes
// (cantidades >= 1, IDs únicos, estado coherente con las líneas). La tasa guardada
// prevalece sobre WithTaxRate.
func Restore(st State, opts ...Option) (*Cart, error) {
	c := NewCart(opts...)
	if st.TaxRate.Valid {
		if st.TaxRate.Decimal.IsNegative() {
			return nil, ErrInvalidState
		}
		c.taxRate = st.TaxRate.Decimal
	}
	seen := make(map[string]struct{}, len(st.Items))
	for _, it := range st.Items {
		if it.Product.ID == "" || it.Quantity < 1 || it.Product.UnitPrice.IsNegative() {
			return nil, ErrInvalidState
		}
		if _, dup := seen[it.Product.ID]; dup {
			return nil, ErrInvalidState
		}
		seen[it.Product.ID] = struct{}{}
	}
	c.items = append([]LineItem(nil), st.Items...)
	if st.Customer != nil {
		sel := *st.Customer
		c.customer = &sel
	}
	switch {
	case len(c.items) == 0:
		c.status = StatusEmpty
	case st.Status == StatusReadyForPayment && c.customer != nil:
		c.status = StatusReadyForPayment
	default:
		c.status = StatusFilling
	}
	return c, nil
}
