package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductHandler *ProductHandler
	ProfileHandler *ProfileHandler
	Session        SessionConfig
	Log            *logger.Logger
}

// Router registra las rutas de la aplicación. El 404 se monta al final.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.Session, deps.Log))

	profile := deps.ProfileHandler
	app.Get("/", profile.Home)

	app.Get("/profile", RequireAuthRedirect(), profile.Profile)
	app.Get("/edit", RequireAuthRedirect(), profile.EditForm)
	app.Post("/edit", RequireAuthRedirect(), profile.UpdateProfile)

	products := deps.ProductHandler
	app.Get("/products", RequireAuthRedirect(), products.Page)

	// Rutas JSON del catálogo: /api/* se registra antes de /:id.
	api := app.Group("/products", RequireAuthJSON())
	api.Get("/api/list", products.List)
	api.Get("/api/catalog.pdf", products.CatalogPDF)
	api.Post("/", products.Create)
	api.Get("/:id", products.GetByID)
	api.Put("/:id", products.Update)
	api.Delete("/:id", products.Delete)

	app.Use(NotFound)
}
