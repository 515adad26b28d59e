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

	"github.com/flightdesk/flightdesk-api/internal/application/auth"
	"github.com/flightdesk/flightdesk-api/internal/application/billing"
	"github.com/flightdesk/flightdesk-api/internal/application/booking"
	"github.com/flightdesk/flightdesk-api/internal/application/flightauth"
	"github.com/flightdesk/flightdesk-api/internal/application/membership"
	appports "github.com/flightdesk/flightdesk-api/internal/application/ports"
	"github.com/flightdesk/flightdesk-api/internal/application/usecase"
	"github.com/flightdesk/flightdesk-api/internal/infrastructure/email"
	"github.com/flightdesk/flightdesk-api/internal/infrastructure/metrics"
	infrapdf "github.com/flightdesk/flightdesk-api/internal/infrastructure/pdf"
	"github.com/flightdesk/flightdesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/flightdesk/flightdesk-api/internal/interfaces/http"
	"github.com/flightdesk/flightdesk-api/pkg/config"
	"github.com/flightdesk/flightdesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	membershipRepo := postgres.NewMembershipRepository(pool)
	membershipTypeRepo := postgres.NewMembershipTypeRepository(pool)
	aircraftRepo := postgres.NewAircraftRepository(pool)
	observationRepo := postgres.NewObservationRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	authorizationRepo := postgres.NewAuthorizationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Outbound mail is optional: without an API key notifications are skipped.
	var notifier appports.Notifier
	if cfg.Mail.ResendAPIKey != "" {
		notifier = email.NewResendNotifier(cfg.Mail.ResendAPIKey, cfg.Mail.FromAddress)
	}

	settingsSvc := usecase.NewSettingsService(settingRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, userRepo, settingsSvc, notifier)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, userRepo, pdfGenerator)
	membershipUC := membership.NewMembershipUseCase(membershipRepo, membershipTypeRepo, userRepo, settingsSvc, invoiceUC, notifier)
	aircraftUC := usecase.NewAircraftUseCase(aircraftRepo)
	observationUC := usecase.NewObservationUseCase(observationRepo, aircraftRepo)
	bookingUC := booking.NewBookingUseCase(bookingRepo, aircraftRepo, authorizationRepo, observationRepo, userRepo, txRunner, settingsSvc)
	flightAuthUC := flightauth.NewAuthorizationUseCase(authorizationRepo, bookingRepo, userRepo, notifier)
	draftSaver := flightauth.NewDraftSaver(flightAuthUC, flightauth.DefaultDebounce)
	defer draftSaver.FlushAll()
	reportUC := usecase.NewReportUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(metrics.Middleware())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", metrics.Handler())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MembershipUC:  membershipUC,
		AircraftUC:    aircraftUC,
		ObservationUC: observationUC,
		BookingUC:     bookingUC,
		FlightAuthUC:  flightAuthUC,
		DraftSaver:    draftSaver,
		InvoiceUC:     invoiceUC,
		InvoicePDFUC:  invoicePDFUC,
		ReportUC:      reportUC,
		SettingsSvc:   settingsSvc,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
