// Package validation valida DTOs con go-playground/validator y traduce los fallos
// a errores por campo del dominio.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/fertipos-api/internal/domain"
)

var (
	gstinRe  = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	phoneRe  = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)
	domainRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonDigit = regexp.MustCompile(`\D`)
	nonSlug  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Errors lista de errores por campo. errors.Is(err, domain.ErrValidation) es true.
type Errors []*domain.FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, domain.ErrValidation).
func (e Errors) Unwrap() error { return domain.ErrValidation }

// Join devuelve nil si no hay errores, o Errors con los no nulos.
func Join(errs ...*domain.FieldError) error {
	var out Errors
	for _, fe := range errs {
		if fe != nil {
			out = append(out, fe)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Fields extrae los errores por campo de err (Errors o un *FieldError suelto).
func Fields(err error) []*domain.FieldError {
	var list Errors
	if errors.As(err, &list) {
		return list
	}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return []*domain.FieldError{fe}
	}
	return nil
}

// Validator envoltorio con las reglas propias registradas: gstin, phone y shopdomain.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Los nombres de campo en los errores son los del tag json.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return ValidGSTIN(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("shopdomain", func(fl validator.FieldLevel) bool {
		return domainRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve nil o Errors.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, domain.NewFieldError(e.Field(), message(e)))
	}
	return out
}

// ValidGSTIN valida el formato del GSTIN (15 caracteres).
func ValidGSTIN(s string) bool { return gstinRe.MatchString(s) }

// ValidPhone valida un teléfono después de quitar todo lo que no sea dígito.
func ValidPhone(s string) bool { return phoneRe.MatchString(NormalizePhone(s)) }

// NormalizePhone deja solo los dígitos.
func NormalizePhone(s string) string { return nonDigit.ReplaceAllString(s, "") }

// Slugify genera un subdominio válido a partir del nombre de la tienda.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo requerido"
	case "email":
		return "email inválido"
	case "gstin":
		return "GSTIN inválido"
	case "phone":
		return "teléfono inválido"
	case "shopdomain":
		return "solo minúsculas, números y guiones"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "eqfield":
		return "no coincide con " + e.Param()
	case "uuid":
		return "UUID inválido"
	default:
		return "valor inválido"
	}
}
