package dto

import (
	"encoding/json"
	"strings"
)

// ErrorResponse cuerpo de error HTTP para rutas que no son del catálogo.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Envelope respuesta de las mutaciones del catálogo: {success, message|error, product?}.
type Envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Product *ProductResponse `json:"product,omitempty"`
}

// TextValue valor de formulario tal como llega: acepta string o número JSON
// (y texto plano en formularios) y conserva la representación textual para
// que la validación decida si es un número o un entero válido.
type TextValue string

// UnmarshalJSON acepta "texto", 12, 12.5 o null.
func (v *TextValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = TextValue(str)
		return nil
	}
	*v = TextValue(s)
	return nil
}

// UnmarshalText para application/x-www-form-urlencoded.
func (v *TextValue) UnmarshalText(b []byte) error {
	*v = TextValue(b)
	return nil
}

func (v TextValue) String() string { return string(v) }
