package itinerary

import (
	"context"
	"errors"

	"backend-vietrip/internal/auth"
	"backend-vietrip/internal/trip"

	"github.com/gofiber/fiber/v2"
)

// DayAccess decides whether a user may touch a day plan.
type DayAccess interface {
	AuthorizeDayPlan(ctx context.Context, dayPlanID, userID string) (trip.DayPlan, error)
}

func RegisterRoutes(r fiber.Router, svc *Service, access DayAccess, authMiddleware fiber.Handler) {
	r.Get("/days/:dayPlanID/visits", authMiddleware, func(c *fiber.Ctx) error {
		session, err := authorizeDay(c, access, c.Params("dayPlanID"))
		if err != nil {
			return err
		}
		views, err := svc.VisitViews(c.Context(), session.UserID, c.Params("dayPlanID"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(views)
	})

	r.Post("/days/:dayPlanID/visits", authMiddleware, func(c *fiber.Ctx) error {
		session, err := authorizeDay(c, access, c.Params("dayPlanID"))
		if err != nil {
			return err
		}
		var req AddVisitInput
		if err := c.BodyParser(&req); err != nil || req.PlaceRef == "" {
			return fiber.NewError(fiber.StatusBadRequest, "place_id required")
		}
		visit, err := svc.AddVisit(c.Context(), session.UserID, c.Params("dayPlanID"), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(visit)
	})

	r.Put("/days/:dayPlanID/visits/order", authMiddleware, func(c *fiber.Ctx) error {
		if _, err := authorizeDay(c, access, c.Params("dayPlanID")); err != nil {
			return err
		}
		var moves []Move
		if err := c.BodyParser(&moves); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		written, err := svc.Reorder(c.Context(), c.Params("dayPlanID"), moves)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(written)
	})

	r.Post("/days/:dayPlanID/visits/:id/move", authMiddleware, func(c *fiber.Ctx) error {
		if _, err := authorizeDay(c, access, c.Params("dayPlanID")); err != nil {
			return err
		}
		var body struct {
			Direction Direction `json:"direction"`
			ToIndex   *int      `json:"to_index"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		var (
			moved bool
			err   error
		)
		dayPlanID, visitID := c.Params("dayPlanID"), c.Params("id")
		switch {
		case body.ToIndex != nil:
			moved, err = svc.MoveTo(c.Context(), dayPlanID, visitID, *body.ToIndex)
		case body.Direction == Up:
			moved, err = svc.MoveUp(c.Context(), dayPlanID, visitID)
		case body.Direction == Down:
			moved, err = svc.MoveDown(c.Context(), dayPlanID, visitID)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "direction or to_index required")
		}
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"moved": moved})
	})

	r.Get("/days/:dayPlanID/summary", authMiddleware, func(c *fiber.Ctx) error {
		session, err := authorizeDay(c, access, c.Params("dayPlanID"))
		if err != nil {
			return err
		}
		sum, err := svc.Summary(c.Context(), session.UserID, c.Params("dayPlanID"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(sum)
	})

	r.Patch("/visits/:id", authMiddleware, func(c *fiber.Ctx) error {
		visit, session, err := authorizeVisit(c, svc, access)
		if err != nil {
			return err
		}
		var req VisitPatch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated, err := svc.UpdateVisit(c.Context(), session.UserID, visit.ID, req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(updated)
	})

	r.Delete("/visits/:id", authMiddleware, func(c *fiber.Ctx) error {
		visit, _, err := authorizeVisit(c, svc, access)
		if err != nil {
			return err
		}
		if err := svc.DeleteVisit(c.Context(), visit.ID); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func authorizeDay(c *fiber.Ctx, access DayAccess, dayPlanID string) (auth.Session, error) {
	session, err := auth.RequireSession(c)
	if err != nil {
		return auth.Session{}, err
	}
	if _, err := access.AuthorizeDayPlan(c.Context(), dayPlanID, session.UserID); err != nil {
		return auth.Session{}, toHTTPError(err)
	}
	return session, nil
}

func authorizeVisit(c *fiber.Ctx, svc *Service, access DayAccess) (Visit, auth.Session, error) {
	if _, err := auth.RequireSession(c); err != nil {
		return Visit{}, auth.Session{}, err
	}
	visit, err := svc.GetVisit(c.Context(), c.Params("id"))
	if err != nil {
		return Visit{}, auth.Session{}, toHTTPError(err)
	}
	session, err := authorizeDay(c, access, visit.DayPlanID)
	if err != nil {
		return Visit{}, auth.Session{}, err
	}
	return visit, session, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, trip.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
