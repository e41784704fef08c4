package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/internal/application/usecase"
	"github.com/jhoicas/catalogo-perfil/internal/domain"
	"github.com/jhoicas/catalogo-perfil/internal/domain/validation"
)

// ProfileHandler páginas de inicio, perfil y edición de perfil.
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Home godoc
// @Summary      Página de inicio
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.HomeView
// @Router       / [get]
func (h *ProfileHandler) Home(c *fiber.Ctx) error {
	view := dto.HomeView{Title: "Inicio", CurrentPage: "home"}
	if s, ok := GetSession(c); ok {
		view.IsAuthenticated = true
		view.User = &s
	}
	return c.JSON(view)
}

// Profile godoc
// @Summary      Perfil del usuario autenticado
// @Description  Si el proveedor de identidad falla se devuelven los datos de la sesión con un aviso.
// @Tags         profile
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.ProfileView
// @Success      302  "Redirige a / sin sesión"
// @Router       /profile [get]
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	return c.JSON(h.uc.Profile(c.UserContext(), s))
}

// EditForm godoc
// @Summary      Formulario de edición de perfil
// @Tags         profile
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.EditProfileView
// @Success      302  "Redirige a / sin sesión"
// @Router       /edit [get]
func (h *ProfileHandler) EditForm(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	return c.JSON(h.uc.EditForm(c.UserContext(), s))
}

// UpdateProfile godoc
// @Summary      Actualizar metadatos de perfil
// @Description  Sanea y valida tipoDocumento, numeroDocumento, direccion y telefono; solo envía los campos presentes.
// @Tags         profile
// @Security     Session
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        body  body  validation.ProfileInput  true  "Metadatos"
// @Success      200   {object}  dto.EditProfileView
// @Failure      400   {object}  dto.EditProfileView
// @Failure      502   {object}  dto.EditProfileView
// @Success      302   "Redirige a / sin sesión"
// @Router       /edit [post]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	s, _ := GetSession(c)
	var in validation.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido"})
	}

	view, err := h.uc.UpdateProfile(c.UserContext(), s, in)
	switch {
	case err == nil:
		return c.JSON(view)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(view)
	default:
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}
}
