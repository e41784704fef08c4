package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
)

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// SanitizeProfile
// ──────────────────────────────────────────────────────────────────────────────

func TestSanitizeProfile_RecortaYMayusculas(t *testing.T) {
	got := validation.SanitizeProfile(validation.ProfileInput{
		TipoDocumento:   " cc ",
		NumeroDocumento: " 123456 ",
		Direccion:       "  Calle 1 # 2-3 ",
		Telefono:        " 3001234567",
	})
	require.NotNil(t, got.TipoDocumento)
	assert.Equal(t, "CC", *got.TipoDocumento)
	assert.Equal(t, "123456", *got.NumeroDocumento)
	assert.Equal(t, "Calle 1 # 2-3", *got.Direccion)
	assert.Equal(t, "3001234567", *got.Telefono)
}

func TestSanitizeProfile_OmiteCamposAusentes(t *testing.T) {
	got := validation.SanitizeProfile(validation.ProfileInput{Telefono: "3001234567"})
	assert.Nil(t, got.TipoDocumento)
	assert.Nil(t, got.NumeroDocumento)
	assert.Nil(t, got.Direccion)
	assert.Equal(t, map[string]string{"telefono": "3001234567"}, got.ToMap())
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateProfile
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateProfile_SinCamposEsValido(t *testing.T) {
	res := validation.ValidateProfile(validation.ProfileMetadata{})
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateProfile_TipoDocumento(t *testing.T) {
	for _, tipo := range []string{"CC", "TI", "CE", "PAS", "NIT"} {
		res := validation.ValidateProfile(validation.ProfileMetadata{TipoDocumento: strPtr(tipo)})
		assert.True(t, res.IsValid, tipo)
	}
	res := validation.ValidateProfile(validation.ProfileMetadata{TipoDocumento: strPtr("RC")})
	assert.Equal(t, []string{validation.MsgTipoDocumento}, res.Errors)
}

func TestValidateProfile_NumeroDocumento(t *testing.T) {
	res := validation.ValidateProfile(validation.ProfileMetadata{NumeroDocumento: strPtr("12345")})
	assert.Equal(t, []string{validation.MsgDocumentoLongitud}, res.Errors)

	res = validation.ValidateProfile(validation.ProfileMetadata{NumeroDocumento: strPtr("1234567890123456")})
	assert.Equal(t, []string{validation.MsgDocumentoLongitud}, res.Errors)

	res = validation.ValidateProfile(validation.ProfileMetadata{NumeroDocumento: strPtr("1A3")})
	assert.Equal(t, []string{validation.MsgDocumentoSoloNum, validation.MsgDocumentoLongitud}, res.Errors)

	res = validation.ValidateProfile(validation.ProfileMetadata{NumeroDocumento: strPtr("1020304050")})
	assert.True(t, res.IsValid)
}

func TestValidateProfile_Direccion(t *testing.T) {
	res := validation.ValidateProfile(validation.ProfileMetadata{Direccion: strPtr("Cra")})
	assert.Equal(t, []string{validation.MsgDireccionLongitud}, res.Errors)

	largo := make([]byte, 101)
	for i := range largo {
		largo[i] = 'a'
	}
	res = validation.ValidateProfile(validation.ProfileMetadata{Direccion: strPtr(string(largo))})
	assert.Equal(t, []string{validation.MsgDireccionLongitud}, res.Errors)

	res = validation.ValidateProfile(validation.ProfileMetadata{Direccion: strPtr("Calle 10 # 5-20")})
	assert.True(t, res.IsValid)
}

func TestValidateProfile_TelefonoCaracteresInvalidos(t *testing.T) {
	res := validation.ValidateProfile(validation.ProfileMetadata{Telefono: strPtr("300-123-4567 ext")})
	assert.Equal(t, []string{validation.MsgTelefonoCaracteres}, res.Errors)

	res = validation.ValidateProfile(validation.ProfileMetadata{Telefono: strPtr("57+3001234567")})
	assert.Equal(t, []string{validation.MsgTelefonoCaracteres}, res.Errors)
}

// Escenario: teléfono con formato internacional ya recortado.
func TestValidateProfile_TelefonoConFormato(t *testing.T) {
	meta := validation.SanitizeProfile(validation.ProfileInput{Telefono: "+57 (300) 123-4567"})
	require.NotNil(t, meta.Telefono)
	assert.Equal(t, "+57 (300) 123-4567", *meta.Telefono)

	res := validation.ValidateProfile(meta)
	assert.True(t, res.IsValid)
}

// Escenario: sanitizar y validar acumula errores de documento y teléfono; la dirección ausente no falla.
func TestSanitizeYValidar_EscenarioMixto(t *testing.T) {
	meta := validation.SanitizeProfile(validation.ProfileInput{
		TipoDocumento:   " cc ",
		NumeroDocumento: "12AB34",
		Telefono:        "123",
	})
	require.NotNil(t, meta.TipoDocumento)
	assert.Equal(t, "CC", *meta.TipoDocumento)
	assert.Nil(t, meta.Direccion)

	res := validation.ValidateProfile(meta)
	require.False(t, res.IsValid)
	assert.Equal(t, []string{validation.MsgDocumentoSoloNum, validation.MsgTelefonoDigitos}, res.Errors)
	assert.Contains(t, res.Errors[0], "solo números")
	assert.NotContains(t, res.Errors, validation.MsgDireccionLongitud)
}

func TestProfileMetadata_MergeInto(t *testing.T) {
	base := map[string]interface{}{"telefono": "3000000000", "otro": "x"}
	meta := validation.ProfileMetadata{Telefono: strPtr("3111111111")}

	got := meta.MergeInto(base)
	assert.Equal(t, "3111111111", got["telefono"])
	assert.Equal(t, "x", got["otro"])
	assert.Equal(t, "3000000000", base["telefono"], "la base no debe mutar")
}
