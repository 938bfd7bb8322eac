package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fertipos-api/internal/application/validation"
	"github.com/jhoicas/fertipos-api/internal/domain"
)

type form struct {
	Name     string `json:"name" validate:"required,max=10"`
	Phone    string `json:"phone" validate:"required,phone"`
	GST      string `json:"gst_number" validate:"omitempty,gstin"`
	Domain   string `json:"shop_domain" validate:"omitempty,shopdomain"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Confirm  string `json:"confirm_password" validate:"eqfield=Password"`
}

func TestValidator_OK(t *testing.T) {
	v := validation.New()
	err := v.Struct(form{Name: "Ramesh", Phone: "+91 98765-43210", GST: "27AAPFU0939F1ZV", Domain: "agro-ramesh"})
	assert.NoError(t, err)
}

func TestValidator_ErroresPorCampo(t *testing.T) {
	v := validation.New()
	err := v.Struct(form{Name: "", Phone: "0123", GST: "27aapfu0939f1zv", Domain: "Agro_Shop", Password: "12345678", Confirm: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got := map[string]string{}
	for _, fe := range validation.Fields(err) {
		got[fe.Field] = fe.Message
	}
	assert.Equal(t, "campo requerido", got["name"])
	assert.Equal(t, "teléfono inválido", got["phone"])
	assert.Equal(t, "GSTIN inválido", got["gst_number"])
	assert.Contains(t, got, "shop_domain")
	assert.Contains(t, got, "confirm_password")
}

func TestValidGSTIN(t *testing.T) {
	assert.True(t, validation.ValidGSTIN("29ABCDE1234F1Z5"))
	assert.False(t, validation.ValidGSTIN("29ABCDE1234F0Z5"), "el carácter 13 no puede ser 0")
	assert.False(t, validation.ValidGSTIN("29ABCDE1234F1X5"))
	assert.False(t, validation.ValidGSTIN(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, validation.ValidPhone("9876543210"))
	assert.True(t, validation.ValidPhone("+91-98765 43210"))
	assert.False(t, validation.ValidPhone("0987654321"))
	assert.False(t, validation.ValidPhone("12345678901234567"))
	assert.False(t, validation.ValidPhone("abc"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "green-valley-agro", validation.Slugify("  Green Valley  Agro!! "))
	assert.Equal(t, "shop-24", validation.Slugify("Shop #24"))
}

func TestJoin(t *testing.T) {
	assert.NoError(t, validation.Join(nil, nil))
	err := validation.Join(nil, domain.NewFieldError("sale_price", "debe ser mayor al costo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "sale_price: debe ser mayor al costo", err.Error())
}
