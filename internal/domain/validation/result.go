// Package validation contiene las reglas de negocio que filtran toda escritura:
// productos del catálogo y metadatos de perfil enviados al proveedor de identidad.
// Todas las funciones son puras: sin E/S ni estado compartido.
package validation

import "github.com/jhoicas/catalogo-perfil/internal/domain"

// Result resultado de una validación. Las violaciones se acumulan en el orden
// de los campos en lugar de detenerse en la primera.
type Result struct {
	IsValid bool
	Errors  []string
}

func newResult(errs []string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Err devuelve nil si el resultado es válido, o un *domain.ValidationError con los mensajes.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return domain.NewValidationError(r.Errors)
}
