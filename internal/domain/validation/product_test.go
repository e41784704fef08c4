package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
)

func validFields() validation.ProductFields {
	return validation.ProductFields{
		Nombre:      "Widget",
		Descripcion: "  Un widget  ",
		Precio:      "10.50",
		Cantidad:    "5",
	}
}

func TestValidateProduct_CamposValidos(t *testing.T) {
	res := validation.ValidateProduct(validFields())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
	assert.NoError(t, res.Err())
}

func TestParseProduct_DevuelveValoresTipados(t *testing.T) {
	f := validFields()
	f.Nombre = "  Widget  "

	v, res := validation.ParseProduct(f)
	require.True(t, res.IsValid)
	assert.Equal(t, "Widget", v.Nombre)
	assert.Equal(t, "Un widget", v.Descripcion)
	assert.True(t, v.Precio.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, 5, v.Cantidad)
}

func TestValidateProduct_Nombre(t *testing.T) {
	cases := map[string]bool{
		"":         false,
		"AB":       false,
		"  AB   ":  false,
		"ABC":      true,
		" Café ":   true,
		"ñu":       false,
		"   ñuú  ": true,
	}
	for nombre, ok := range cases {
		f := validFields()
		f.Nombre = nombre
		res := validation.ValidateProduct(f)
		assert.Equal(t, ok, res.IsValid, "nombre %q", nombre)
		if !ok {
			assert.Equal(t, []string{validation.MsgNombreMin}, res.Errors)
		}
	}
}

func TestValidateProduct_Precio(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     false,
		"0.00":  false,
		"-1":    false,
		"abc":   false,
		"12abc": false,
		"0.01":  true,
		"1000":  true,
		" 5 ":   true,
	}
	for precio, ok := range cases {
		f := validFields()
		f.Precio = precio
		res := validation.ValidateProduct(f)
		assert.Equal(t, ok, res.IsValid, "precio %q", precio)
		if !ok {
			assert.Equal(t, []string{validation.MsgPrecioInvalid}, res.Errors)
		}
	}
}

// Exponentes y magnitudes desmedidas se rechazan antes de construir el decimal.
func TestValidateProduct_PrecioNotacionYMagnitud(t *testing.T) {
	cases := map[string]bool{
		"1e3":                      false,
		"1E2":                      false,
		"1e50000000":               false,
		"2.5e-3":                   false,
		"+5":                       false,
		".5":                       false,
		"5.":                       false,
		"1_000":                    false,
		"1234567890123456":         false,
		"1.12345678901":            false,
		"123456789012345":          true,
		"0.0000000001":             true,
		"999999999999999.99999999": true,
	}
	for precio, ok := range cases {
		f := validFields()
		f.Precio = precio
		res := validation.ValidateProduct(f)
		assert.Equal(t, ok, res.IsValid, "precio %q", precio)
		if !ok {
			assert.Equal(t, []string{validation.MsgPrecioInvalid}, res.Errors)
		}
	}
}

func TestValidateProduct_Cantidad(t *testing.T) {
	cases := map[string]bool{
		"":    false,
		"-5":  false,
		"5.5": false,
		"5.0": false,
		"x":   false,
		"0":   true,
		"50":  true,
	}
	for cantidad, ok := range cases {
		f := validFields()
		f.Cantidad = cantidad
		res := validation.ValidateProduct(f)
		assert.Equal(t, ok, res.IsValid, "cantidad %q", cantidad)
		if !ok {
			assert.Equal(t, []string{validation.MsgCantidadInval}, res.Errors)
		}
	}
}

// Las violaciones se acumulan en orden de campo en un único resultado.
func TestValidateProduct_AcumulaErrores(t *testing.T) {
	res := validation.ValidateProduct(validation.ProductFields{Nombre: "A", Precio: "0", Cantidad: "-1"})
	require.False(t, res.IsValid)
	assert.Equal(t, []string{
		validation.MsgNombreMin,
		validation.MsgPrecioInvalid,
		validation.MsgCantidadInval,
	}, res.Errors)

	err := res.Err()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, vErr.Errors, 3)
}
