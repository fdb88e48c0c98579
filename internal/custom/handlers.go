package custom

import (
	"errors"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/cities", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		cities, err := svc.ListCities(c.Context(), session.UserID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(cities)
	})

	r.Post("/cities", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req CityInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		city, err := svc.CreateCity(c.Context(), session.UserID, req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(city)
	})

	r.Get("/cities/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		city, err := svc.GetCity(c.Context(), session.UserID, c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(city)
	})

	r.Patch("/cities/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req CityPatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		city, err := svc.UpdateCity(c.Context(), session.UserID, c.Params("id"), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(city)
	})

	r.Delete("/cities/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteCity(c.Context(), session.UserID, c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/places", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		places, err := svc.ListPlaces(c.Context(), session.UserID, c.Query("city"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(places)
	})

	r.Post("/places", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req PlaceInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		place, err := svc.CreatePlace(c.Context(), session.UserID, req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(place)
	})

	r.Get("/places/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		place, err := svc.GetPlace(c.Context(), session.UserID, c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(place)
	})

	r.Patch("/places/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req PlacePatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		place, err := svc.UpdatePlace(c.Context(), session.UserID, c.Params("id"), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(place)
	})

	r.Delete("/places/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		if err := svc.DeletePlace(c.Context(), session.UserID, c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
