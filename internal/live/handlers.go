// Package live streams query snapshots over websockets. Each connection
// owns one livequery.Query and pushes its snapshot whenever it changes.
package live

import (
	"context"
	"errors"

	"backend-vietrip/internal/auth"
	"backend-vietrip/internal/itinerary"
	"backend-vietrip/internal/livequery"
	"backend-vietrip/internal/logger"
	"backend-vietrip/internal/stream"
	"backend-vietrip/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
)

type Trips interface {
	Authorize(ctx context.Context, tripID, userID string) (string, error)
	AuthorizeDayPlan(ctx context.Context, dayPlanID, userID string) (trip.DayPlan, error)
	DayPlans(ctx context.Context, tripID string) ([]trip.DayPlan, error)
}

type Visits interface {
	VisitViews(ctx context.Context, viewerID, dayPlanID string) ([]itinerary.VisitView, error)
}

// Snapshot is the frame sent to clients.
type Snapshot[T any] struct {
	State string `json:"state"`
	Data  T      `json:"data"`
}

type Handler struct {
	source livequery.Subscriber
	trips  Trips
	visits Visits
	log    zerolog.Logger
}

func NewHandler(source livequery.Subscriber, trips Trips, visits Visits, log zerolog.Logger) *Handler {
	return &Handler{source: source, trips: trips, visits: visits, log: logger.Component(log, "live")}
}

func (h *Handler) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Get("/trips/:id/days", authMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		if _, err := h.trips.Authorize(c.Context(), c.Params("id"), session.UserID); err != nil {
			return toHTTPError(err)
		}
		return c.Next()
	}, websocket.New(func(conn *websocket.Conn) {
		tripID := conn.Params("id")
		serve(conn, h.log, func(ctx context.Context) *livequery.Query[[]trip.DayPlan] {
			return livequery.New(ctx, h.source, h.log, livequery.Binding[[]trip.DayPlan]{
				Fetch: func(ctx context.Context) ([]trip.DayPlan, error) {
					return h.trips.DayPlans(ctx, tripID)
				},
				Table:  stream.TableDayPlans,
				Filter: stream.EqFilter("trip_id", tripID),
			})
		})
	}))

	r.Get("/days/:dayPlanID/visits", authMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		if _, err := h.trips.AuthorizeDayPlan(c.Context(), c.Params("dayPlanID"), session.UserID); err != nil {
			return toHTTPError(err)
		}
		return c.Next()
	}, websocket.New(func(conn *websocket.Conn) {
		dayPlanID := conn.Params("dayPlanID")
		session, _ := auth.SessionLookup(func(key string) any { return conn.Locals(key) })
		serve(conn, h.log, func(ctx context.Context) *livequery.Query[[]itinerary.VisitView] {
			q := livequery.New(ctx, h.source, h.log, livequery.Binding[[]itinerary.VisitView]{
				Fetch: func(ctx context.Context) ([]itinerary.VisitView, error) {
					return h.visits.VisitViews(ctx, session.UserID, dayPlanID)
				},
				Table:  stream.TablePlaceVisits,
				Filter: stream.EqFilter("day_plan_id", dayPlanID),
			})
			// renamed or deleted custom places change the resolved views
			if err := q.Follow(stream.TableCustomPlaces, ""); err != nil {
				h.log.Warn().Err(err).Msg("custom place feed unavailable")
			}
			return q
		})
	}))
}

// serve pushes every ready snapshot until the client goes away.
func serve[T any](conn *websocket.Conn, log zerolog.Logger, open func(ctx context.Context) *livequery.Query[T]) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := open(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		var sent uint64
		for range q.Changed() {
			v, state, seq := q.Latest()
			if state != livequery.Ready || seq == sent {
				continue
			}
			sent = seq
			if err := conn.WriteJSON(Snapshot[T]{State: state.String(), Data: v}); err != nil {
				log.Debug().Err(err).Msg("live client write failed")
				cancel()
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		q.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	cancel()
	<-done
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, trip.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, trip.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
