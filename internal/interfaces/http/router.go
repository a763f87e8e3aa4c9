package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/internal/application/auth"
	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/application/usecase"
	"github.com/jhoicas/Cobranza-api/internal/application/watch"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *usecase.CustomerUseCase
	ReminderUC  *usecase.ReminderUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *usecase.DashboardUseCase
	Hub         *watch.Hub
	EmailSender ports.EmailSender
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Relay de email y health (público; la API key viaja en cada petición)
	relayHandler := NewRelayHandler(deps.EmailSender)
	api.Post("/send-email", relayHandler.SendEmail)
	api.Get("/health", relayHandler.Health)
	api.Get("/test", relayHandler.Test)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/statement.pdf", customerHandler.Statement)
	customers.Post("/import", customerHandler.Import)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/pay", customerHandler.MarkPaid)
	customers.Delete("/:id", customerHandler.Delete)

	// Reminders (protegido)
	reminders := protected.Group("/reminders")
	reminderHandler := NewReminderHandler(deps.ReminderUC)
	reminders.Post("/send", reminderHandler.Send)
	reminders.Get("/", reminderHandler.List)
	reminders.Patch("/:id/status", reminderHandler.UpdateStatus)

	// Settings (protegido)
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Save)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)

	// Stream de cambios (protegido; acepta access_token por query)
	eventsHandler := NewEventsHandler(deps.Hub, deps.CustomerUC, deps.ReminderUC)
	protected.Get("/events", eventsHandler.Stream)
}
