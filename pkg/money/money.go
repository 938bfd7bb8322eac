// Package money formatea importes para recibos y respuestas legibles.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea importes de una moneda con separadores de miles del idioma dado.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter valida el código ISO 4217 (ej: "INR").
func NewFormatter(code string, tag language.Tag) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("moneda %q: %w", code, err)
	}
	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Currency código ISO de la moneda.
func (f *Formatter) Currency() string { return f.unit.String() }

// Format redondea a 2 decimales y devuelve "INR 1,234.50". No pasa por float64.
func (f *Formatter) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s %s%s.%02d", f.unit, sign, f.printer.Sprintf("%d", whole.IntPart()), cents)
}
