package supervisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Health serves the liveness endpoint for external orchestration. It keeps
// answering "ok" regardless of the child's state.
type Health struct {
	app  *fiber.App
	port int
}

func NewHealth(port int) *Health {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return &Health{
		app:  app,
		port: port,
	}
}

// Run serves until ctx is cancelled, then shuts the listener down.
func (h *Health) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- h.app.Listen(fmt.Sprintf(":%d", h.port))
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("health server stopped: %w", err)
	case <-ctx.Done():
		if err := h.app.Shutdown(); err != nil {
			slog.Warn("Health server shutdown failed", "error", err)
		}

		return ctx.Err()
	}
}
