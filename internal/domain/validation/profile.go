package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Mensajes de validación de metadatos de perfil.
const (
	MsgTipoDocumento      = "Tipo de documento inválido"
	MsgDocumentoSoloNum   = "El número de documento debe contener solo números"
	MsgDocumentoLongitud  = "El número de documento debe tener entre 6 y 15 dígitos"
	MsgTelefonoCaracteres = "El teléfono debe contener solo números, espacios, guiones, paréntesis y el símbolo +"
	MsgTelefonoDigitos    = "El teléfono debe tener al menos 7 dígitos"
	MsgDireccionLongitud  = "La dirección debe tener entre 5 y 100 caracteres"
)

// Tipos de documento aceptados.
const (
	TipoCC  = "CC"  // Cédula de ciudadanía
	TipoTI  = "TI"  // Tarjeta de identidad
	TipoCE  = "CE"  // Cédula de extranjería
	TipoPAS = "PAS" // Pasaporte
	TipoNIT = "NIT"
)

// ValidTiposDocumento conjunto cerrado de tipos de documento.
var ValidTiposDocumento = map[string]bool{
	TipoCC: true, TipoTI: true, TipoCE: true, TipoPAS: true, TipoNIT: true,
}

const (
	documentoMin   = 6
	documentoMax   = 15
	telefonoMinDig = 7
	direccionMin   = 5
	direccionMax   = 100
)

var (
	soloDigitosRe = regexp.MustCompile(`^[0-9]+$`)
	telefonoRe    = regexp.MustCompile(`^[+]?[0-9\s\-()]+$`)
	noDigitosRe   = regexp.MustCompile(`[^0-9]`)
)

// Claves de user_metadata en el proveedor de identidad.
const (
	KeyTipoDocumento   = "tipoDocumento"
	KeyNumeroDocumento = "numeroDocumento"
	KeyDireccion       = "direccion"
	KeyTelefono        = "telefono"
)

// ProfileInput valores crudos del formulario de edición de perfil.
type ProfileInput struct {
	TipoDocumento   string `json:"tipoDocumento" form:"tipoDocumento"`
	NumeroDocumento string `json:"numeroDocumento" form:"numeroDocumento"`
	Direccion       string `json:"direccion" form:"direccion"`
	Telefono        string `json:"telefono" form:"telefono"`
}

// ProfileMetadata metadatos saneados. Un puntero nil significa "campo ausente":
// semántica de actualización parcial, nunca se rellena con nulos.
type ProfileMetadata struct {
	TipoDocumento   *string
	NumeroDocumento *string
	Direccion       *string
	Telefono        *string
}

// SanitizeProfile recorta todos los campos presentes, normaliza a NFC y pasa
// tipoDocumento a mayúsculas. Los campos vacíos en la entrada se omiten.
func SanitizeProfile(in ProfileInput) ProfileMetadata {
	var out ProfileMetadata
	if in.TipoDocumento != "" {
		v := cases.Upper(language.Und).String(clean(in.TipoDocumento))
		out.TipoDocumento = &v
	}
	if in.NumeroDocumento != "" {
		v := clean(in.NumeroDocumento)
		out.NumeroDocumento = &v
	}
	if in.Telefono != "" {
		v := clean(in.Telefono)
		out.Telefono = &v
	}
	if in.Direccion != "" {
		v := clean(in.Direccion)
		out.Direccion = &v
	}
	return out
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// ValidateProfile valida solo los campos presentes y no vacíos; la ausencia siempre es válida.
func ValidateProfile(m ProfileMetadata) Result {
	var errs []string

	if v, ok := present(m.TipoDocumento); ok {
		if !ValidTiposDocumento[v] {
			errs = append(errs, MsgTipoDocumento)
		}
	}

	if v, ok := present(m.NumeroDocumento); ok {
		if !soloDigitosRe.MatchString(v) {
			errs = append(errs, MsgDocumentoSoloNum)
		}
		if n := utf8.RuneCountInString(v); n < documentoMin || n > documentoMax {
			errs = append(errs, MsgDocumentoLongitud)
		}
	}

	if v, ok := present(m.Telefono); ok {
		if !telefonoRe.MatchString(v) {
			errs = append(errs, MsgTelefonoCaracteres)
		}
		if len(noDigitosRe.ReplaceAllString(v, "")) < telefonoMinDig {
			errs = append(errs, MsgTelefonoDigitos)
		}
	}

	if v, ok := present(m.Direccion); ok {
		n := utf8.RuneCountInString(strings.TrimSpace(v))
		if n < direccionMin || n > direccionMax {
			errs = append(errs, MsgDireccionLongitud)
		}
	}

	return newResult(errs)
}

func present(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

// ToMap devuelve solo los campos presentes, con las claves de user_metadata.
func (m ProfileMetadata) ToMap() map[string]string {
	out := make(map[string]string, 4)
	if m.TipoDocumento != nil {
		out[KeyTipoDocumento] = *m.TipoDocumento
	}
	if m.NumeroDocumento != nil {
		out[KeyNumeroDocumento] = *m.NumeroDocumento
	}
	if m.Direccion != nil {
		out[KeyDireccion] = *m.Direccion
	}
	if m.Telefono != nil {
		out[KeyTelefono] = *m.Telefono
	}
	return out
}

// MergeInto superpone los campos presentes sobre una copia de base (por ejemplo,
// los metadatos actuales del usuario) para volver a mostrar el formulario.
func (m ProfileMetadata) MergeInto(base map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+4)
	for k, v := range base {
		out[k] = v
	}
	for k, v := range m.ToMap() {
		out[k] = v
	}
	return out
}
