package catalog

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router) {
	r.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(Cities())
	})

	r.Get("/cities/:code", func(c *fiber.Ctx) error {
		city, ok := CityByID(c.Params("code"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "city not found")
		}
		return c.JSON(city)
	})

	r.Get("/cities/:code/places", func(c *fiber.Ctx) error {
		if _, ok := CityByID(c.Params("code")); !ok {
			return fiber.NewError(fiber.StatusNotFound, "city not found")
		}
		return c.JSON(PlacesByCity(c.Params("code")))
	})

	r.Get("/places/:code", func(c *fiber.Ctx) error {
		place, ok := PlaceByID(c.Params("code"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "place not found")
		}
		return c.JSON(place)
	})

	r.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(Categories())
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "q required")
		}
		return c.JSON(Search(q))
	})
}
