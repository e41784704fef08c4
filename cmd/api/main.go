package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/catalogo-perfil/internal/application/usecase"
	"github.com/jhoicas/catalogo-perfil/internal/infrastructure/auth0"
	"github.com/jhoicas/catalogo-perfil/internal/infrastructure/csvstore"
	"github.com/jhoicas/catalogo-perfil/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/catalogo-perfil/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/catalogo-perfil/internal/interfaces/http"
	"github.com/jhoicas/catalogo-perfil/pkg/config"
	"github.com/jhoicas/catalogo-perfil/pkg/logger"
)

// @title                       Catálogo y Perfil API
// @version                     1.0
// @description                 Catálogo de productos en CSV con borrado lógico y edición de metadatos de perfil.
// @BasePath                    /
// @securityDefinitions.apikey  Session
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("csv", cfg.Storage.ProductsCSVPath).
		Msg("iniciando aplicación")

	if cfg.Session.Secret == "" {
		log.Warn().Msg("SESSION_SECRET vacío: ninguna sesión será aceptada")
	}
	if cfg.Auth0.IssuerBaseURL == "" {
		log.Warn().Msg("AUTH0_ISSUER_BASE_URL vacío: el perfil usará solo los datos de la sesión")
	}

	m := metrics.New("catalogo")

	store := csvstore.NewProductStore(cfg.Storage.ProductsCSVPath, log)
	productUC := usecase.NewProductUseCase(store, log)

	gateway := auth0.NewManagementClient(auth0.Config{
		IssuerBaseURL: cfg.Auth0.IssuerBaseURL,
		ClientID:      cfg.Auth0.ClientID,
		ClientSecret:  cfg.Auth0.ClientSecret,
		Timeout:       cfg.Auth0.Timeout(),
	}, auth0.WithLogger(log), auth0.WithObserver(m.ObserveIdentityCall))
	profileUC := usecase.NewProfileUseCase(gateway, log)

	pdfGenerator := infrapdf.NewMarotoCatalogGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Catálogo y Perfil API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductHandler: httpRouter.NewProductHandler(productUC, pdfGenerator, m, log),
		ProfileHandler: httpRouter.NewProfileHandler(profileUC),
		Session: httpRouter.SessionConfig{
			Secret:     cfg.Session.Secret,
			Issuer:     cfg.Session.Issuer,
			CookieName: cfg.Session.CookieName,
		},
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
