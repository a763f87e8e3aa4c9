package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/auth"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
	infraai "github.com/jhoicas/Cobranza-api/internal/infrastructure/ai"
	"github.com/jhoicas/Cobranza-api/internal/infrastructure/delivery"
	infrapdf "github.com/jhoicas/Cobranza-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cobranza-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cobranza-api/internal/interfaces/http"
	"github.com/jhoicas/Cobranza-api/pkg/config"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Sentry: DSN vacío lo desactiva.
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.App.Env,
		}); err != nil {
			log.Error().Err(err).Msg("inicializar Sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	reminderRepo := postgres.NewReminderRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	hub := watch.NewHub()

	openAISvc := infraai.NewOpenAIService(cfg.AI.BaseURL, cfg.AI.Model)
	resendSvc := delivery.NewResendService("")
	twilioSvc := delivery.NewTwilioService("")
	statementPDF := infrapdf.NewMarotoStatementGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := usecase.NewCustomerUseCase(customerRepo, txRunner, statementPDF, hub)
	reminderUC := usecase.NewReminderUseCase(
		reminderRepo, customerRepo, settingsRepo,
		openAISvc, resendSvc, twilioSvc, twilioSvc,
		hub,
	)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	app := httpRouter.NewApp(cfg.App.Name)
	if cfg.Sentry.DSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cobranza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		ReminderUC:  reminderUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		Hub:         hub,
		EmailSender: resendSvc,
		JWTSecret:   cfg.JWT.Secret,
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
