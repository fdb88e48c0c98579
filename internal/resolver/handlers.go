package resolver

import (
	"net/url"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, res *Resolver, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/cities/:ref", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		city, ok := res.ResolveCityRef(c.Context(), session.UserID, refParam(c))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "city not found")
		}
		return c.JSON(city)
	})

	r.Get("/cities/:ref/places", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		return c.JSON(res.PlacesForCityRef(c.Context(), refParam(c), session.UserID))
	})

	r.Get("/places/:ref", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		place, ok := res.ResolvePlaceRef(c.Context(), session.UserID, refParam(c))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "place not found")
		}
		return c.JSON(place)
	})
}

func refParam(c *fiber.Ctx) string {
	raw := c.Params("ref")
	if ref, err := url.PathUnescape(raw); err == nil {
		return ref
	}
	return raw
}
