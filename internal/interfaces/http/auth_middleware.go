package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-perfil/internal/application/dto"
	"github.com/jhoicas/catalogo-perfil/pkg/jwt"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// LocalSession clave en c.Locals del usuario autenticado.
const LocalSession = "session"

// MsgNoAutenticado cuerpo de los 401 en las rutas JSON.
const MsgNoAutenticado = "No autenticado"

// SessionConfig parámetros para validar el token de sesión.
type SessionConfig struct {
	Secret     string
	Issuer     string
	CookieName string
}

// SessionMiddleware lee el token de la cookie de sesión o del header
// Authorization: Bearer y, si es válido, deja el usuario en c.Locals.
// Nunca rechaza la petición: las rutas protegidas usan RequireAuthJSON o RequireAuthRedirect.
func SessionMiddleware(cfg SessionConfig, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		token := sessionToken(c, cfg.CookieName)
		if token == "" {
			return c.Next()
		}
		claims, err := jwt.Parse(cfg.Secret, cfg.Issuer, token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token de sesión rechazado")
			return c.Next()
		}
		c.Locals(LocalSession, dto.SessionUser{
			Sub:   claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
		})
		return c.Next()
	}
}

// sessionToken prioriza el header Authorization sobre la cookie.
func sessionToken(c *fiber.Ctx, cookieName string) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	return strings.TrimSpace(c.Cookies(cookieName))
}

// RequireAuthJSON responde 401 {"error":"No autenticado"} si no hay sesión.
func RequireAuthJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetSession(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: MsgNoAutenticado})
		}
		return c.Next()
	}
}

// RequireAuthRedirect redirige a "/" si no hay sesión (rutas de página).
func RequireAuthRedirect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetSession(c); !ok {
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// GetSession devuelve el usuario autenticado (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) (dto.SessionUser, bool) {
	s, ok := c.Locals(LocalSession).(dto.SessionUser)
	if !ok || s.Sub == "" {
		return dto.SessionUser{}, false
	}
	return s, true
}
