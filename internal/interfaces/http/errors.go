package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// Mensajes genéricos; el detalle solo va al log.
const (
	MsgPaginaNoEncontrada = "Página no encontrada"
	MsgErrorInterno       = "Error interno del servidor"
)

// ErrorHandler manejador global de Fiber: *fiber.Error conserva su código y mensaje,
// cualquier otro error se registra y responde 500 genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = MsgPaginaNoEncontrada
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: msg})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error general")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgErrorInterno})
	}
}

// NotFound se registra al final de la cadena para las rutas inexistentes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: MsgPaginaNoEncontrada})
}
