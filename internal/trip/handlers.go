package trip

import (
	"errors"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Post("/", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req CreateTripInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, err := svc.CreateTrip(c.Context(), session.UserID, req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		trips, err := svc.ListTrips(c.Context(), session.UserID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(trips)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		if err := authorize(c, svc); err != nil {
			return err
		}
		trip, err := svc.GetTrip(c.Context(), c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(trip)
	})

	r.Patch("/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		var req TripPatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, err := svc.UpdateTrip(c.Context(), session.UserID, c.Params("id"), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(trip)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteTrip(c.Context(), session.UserID, c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/days", func(c *fiber.Ctx) error {
		if err := authorize(c, svc); err != nil {
			return err
		}
		plans, err := svc.DayPlans(c.Context(), c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(plans)
	})

	r.Get("/:id/days/:day", func(c *fiber.Ctx) error {
		if err := authorize(c, svc); err != nil {
			return err
		}
		day, err := c.ParamsInt("day")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		plan, err := svc.DayPlan(c.Context(), c.Params("id"), day)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(plan)
	})

	r.Patch("/:id/days/:day", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		day, err := c.ParamsInt("day")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		var body struct {
			Notes string `json:"notes"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		plan, err := svc.UpdateDayPlanNotes(c.Context(), session.UserID, c.Params("id"), day, body.Notes)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(plan)
	})

	r.Get("/:id/members", func(c *fiber.Ctx) error {
		if err := authorize(c, svc); err != nil {
			return err
		}
		members, err := svc.Members(c.Context(), c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(members)
	})

	r.Post("/:id/invite", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		invite, err := svc.GenerateInvite(c.Context(), c.Params("id"), session.UserID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(invite)
	})
}

// RegisterInviteRoutes serves the invite code endpoints used by people who
// are not members yet.
func RegisterInviteRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/:code", func(c *fiber.Ctx) error {
		if _, err := auth.RequireSession(c); err != nil {
			return err
		}
		preview, err := svc.PreviewInvite(c.Context(), c.Params("code"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(preview)
	})

	r.Post("/:code/join", func(c *fiber.Ctx) error {
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		tripID, err := svc.JoinByInvite(c.Context(), c.Params("code"), session.UserID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"trip_id": tripID})
	})
}

func authorize(c *fiber.Ctx, svc *Service) error {
	session, err := auth.RequireSession(c)
	if err != nil {
		return err
	}
	if _, err := svc.Authorize(c.Context(), c.Params("id"), session.UserID); err != nil {
		return toHTTPError(err)
	}
	return nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInviteInvalid):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
