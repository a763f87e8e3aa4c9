package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp construye la aplicación Fiber con los timeouts del servidor.
// WriteTimeout queda en cero a propósito: en fasthttp aplica a la respuesta
// completa y cortaría los streams SSE de /api/events a los pocos segundos.
// Las llamadas salientes ya están acotadas por sus propios context timeouts.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	return app
}
