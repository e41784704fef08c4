package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrStorageRead  = errors.New("no se pudieron leer los productos")
	ErrStorageWrite = errors.New("no se pudieron guardar los productos")
	ErrUpstream     = errors.New("error del proveedor de identidad")
)

// ValidationError acumula las violaciones de reglas de negocio de una entrada.
// Nunca se aplica parcialmente: si existe, no hubo escritura.
type ValidationError struct {
	Errors []string
}

// NewValidationError construye el error con los mensajes en el orden recibido.
func NewValidationError(msgs []string) *ValidationError {
	out := make([]string, len(msgs))
	copy(out, msgs)
	return &ValidationError{Errors: out}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, ", ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
