package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/application/ports"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// Mensajes mostrados en las vistas de perfil.
const (
	MsgPerfilNoActualizado = "No se pudo cargar la información actualizada del perfil"
	MsgPerfilNoCargado     = "No se pudo cargar la información del perfil"
	MsgErrorActualizar     = "Error al actualizar el perfil. Por favor, intenta nuevamente."
	MsgPerfilActualizado   = "Perfil actualizado exitosamente"

	titleProfile     = "Mi Perfil"
	titleEditProfile = "Editar Perfil"
	pageProfile      = "profile"
	pageEditProfile  = "editProfile"
)

// ProfileUseCase vista y edición de los metadatos del usuario autenticado.
// Las vistas siempre se construyen: ante fallos del proveedor se degrada a los
// datos de la sesión y el error se informa dentro de la vista.
type ProfileUseCase struct {
	gateway ports.IdentityGateway
	log     *logger.Logger
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(gateway ports.IdentityGateway, log *logger.Logger) *ProfileUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProfileUseCase{gateway: gateway, log: log.Named("perfil")}
}

// Profile devuelve el perfil completo del proveedor o, si falla, el de la sesión con un aviso.
func (uc *ProfileUseCase) Profile(ctx context.Context, session dto.SessionUser) *dto.ProfileView {
	view := &dto.ProfileView{Title: titleProfile, CurrentPage: pageProfile}

	user, err := uc.gateway.GetUser(ctx, session.Sub)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", session.Sub).Msg("error obteniendo perfil")
		view.User = sessionIdentity(session)
		view.Error = MsgPerfilNoActualizado
		return view
	}
	view.User = user
	return view
}

// EditForm devuelve el formulario precargado con los metadatos actuales.
func (uc *ProfileUseCase) EditForm(ctx context.Context, session dto.SessionUser) *dto.EditProfileView {
	user, err := uc.gateway.GetUser(ctx, session.Sub)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", session.Sub).Msg("error mostrando formulario de edición")
		return editView(sessionIdentity(session), map[string]interface{}{}, []string{MsgPerfilNoCargado}, "")
	}
	return editView(user, copyMeta(user.UserMetadata), nil, "")
}

// UpdateProfile sanea, valida y, si todo es válido, actualiza user_metadata y
// vuelve a leer el usuario. La vista siempre se devuelve; err es
// *domain.ValidationError cuando la entrada es inválida o el error del proveedor
// cuando falla la actualización.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, session dto.SessionUser, in validation.ProfileInput) (*dto.EditProfileView, error) {
	meta := validation.SanitizeProfile(in)
	res := validation.ValidateProfile(meta)

	if !res.IsValid {
		user, base := uc.currentUser(ctx, session)
		return editView(user, meta.MergeInto(base), res.Errors, ""), res.Err()
	}

	if err := uc.gateway.UpdateUserMetadata(ctx, session.Sub, meta); err != nil {
		uc.log.Error().Err(err).Str("user_id", session.Sub).Msg("error actualizando perfil")
		user, base := uc.currentUser(ctx, session)
		return editView(user, meta.MergeInto(base), []string{MsgErrorActualizar}, ""), err
	}

	uc.log.Info().Str("user_id", session.Sub).Int("campos", len(meta.ToMap())).Msg("perfil actualizado")

	updated, err := uc.gateway.GetUser(ctx, session.Sub)
	if err != nil {
		// La escritura ya se aplicó; se muestran los datos enviados sobre la sesión.
		uc.log.Warn().Err(err).Str("user_id", session.Sub).Msg("no se pudo releer el perfil actualizado")
		return editView(sessionIdentity(session), meta.MergeInto(nil), nil, MsgPerfilActualizado), nil
	}
	return editView(updated, copyMeta(updated.UserMetadata), nil, MsgPerfilActualizado), nil
}

// currentUser obtiene el usuario del proveedor o, si falla, el de la sesión sin metadatos.
func (uc *ProfileUseCase) currentUser(ctx context.Context, session dto.SessionUser) (*dto.IdentityUser, map[string]interface{}) {
	user, err := uc.gateway.GetUser(ctx, session.Sub)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", session.Sub).Msg("error obteniendo usuario para el formulario")
		return sessionIdentity(session), nil
	}
	return user, user.UserMetadata
}

func editView(user *dto.IdentityUser, meta map[string]interface{}, errs []string, success string) *dto.EditProfileView {
	if errs == nil {
		errs = []string{}
	}
	return &dto.EditProfileView{
		Title:       titleEditProfile,
		CurrentPage: pageEditProfile,
		User:        user,
		Meta:        meta,
		Errors:      errs,
		Success:     success,
	}
}

func sessionIdentity(s dto.SessionUser) *dto.IdentityUser {
	return &dto.IdentityUser{UserID: s.Sub, Email: s.Email, Name: s.Name}
}

func copyMeta(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
