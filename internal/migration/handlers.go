package migration

import (
	"errors"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes POST /legacy-migration for the signed-in user.
func RegisterRoutes(r fiber.Router, m *Migrator, authMiddleware fiber.Handler) {
	r.Post("/legacy-migration", authMiddleware, func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		report, err := m.Run(c.Context(), session.UserID)
		switch {
		case errors.Is(err, ErrInProgress):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidUser):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(report)
		}
		return c.JSON(report)
	})
}
