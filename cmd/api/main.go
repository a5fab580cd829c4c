package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Rechnungen-api/docs"
	"github.com/jhoicas/Rechnungen-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Rechnungen-api/internal/interfaces/http"
	"github.com/jhoicas/Rechnungen-api/pkg/config"
	"github.com/jhoicas/Rechnungen-api/pkg/logger"
)

// @title        Rechnungen API
// @version      1.0
// @description  Provisionsrechnungen (Vermittlungsprovision) für Kooperationspartner: Rechnungen, Partner, Kunden und PDF-Erzeugung.
// @BasePath     /
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Sin spool: en el servidor la vista previa se devuelve inline al navegador.
	rt, err := bootstrap.Open(ctx, cfg, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de facturas")
	}
	defer rt.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsFile); err == nil {
		app.Use(httpRouter.SwaggerDocs(cfg.HTTP.DocsFile, "Rechnungen API"))
	} else {
		log.Warn().Str("file", cfg.HTTP.DocsFile).Msg("swagger.json no encontrado; /docs desactivado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		InvoiceUC:   rt.Invoices,
		DocumentUC:  rt.Documents,
		PartnerUC:   rt.Partners,
		CustomerUC:  rt.Customers,
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
