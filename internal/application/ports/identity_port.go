package ports

import (
	"context"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
)

// IdentityGateway puerto de salida hacia la API de administración del proveedor de identidad.
// Cualquier fallo de red o respuesta no exitosa se devuelve envolviendo domain.ErrUpstream.
type IdentityGateway interface {
	// GetUser devuelve el registro completo del usuario, incluido user_metadata.
	GetUser(ctx context.Context, userID string) (*dto.IdentityUser, error)

	// UpdateUserMetadata reemplaza en el proveedor las claves de metadata presentes.
	// Las claves ausentes no se envían.
	UpdateUserMetadata(ctx context.Context, userID string, meta validation.ProfileMetadata) error
}
