package stream

import (
	"context"
	"encoding/json"
	"errors"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Gate decides whether a user may follow a table narrowed by a filter.
type Gate interface {
	AuthorizeWatch(ctx context.Context, userID, table string, f Filter) error
}

// RegisterRoutes exposes the change feed at /ws?table=...&filter=col=eq.value.
// The caller must be signed in and the gate must accept the feed before the
// connection is upgraded.
func RegisterRoutes(r fiber.Router, hub *Hub, gate Gate, authMiddleware fiber.Handler) {
	r.Get("/ws", authMiddleware, func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		session, err := auth.RequireSession(c)
		if err != nil {
			return err
		}
		table := c.Query("table")
		if !knownTables[table] {
			return fiber.NewError(fiber.StatusBadRequest, ErrUnknownTable.Error())
		}
		f, err := ParseFilter(c.Query("filter"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := gate.AuthorizeWatch(c.Context(), session.UserID, table, f); err != nil {
			if errors.Is(err, ErrWatchForbidden) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		sub, err := hub.Subscribe(c.Query("table"), c.Query("filter"))
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": err.Error()})
			return
		}
		defer sub.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				select {
				case ch, ok := <-sub.Events():
					if !ok {
						return
					}
					msg, err := json.Marshal(ch)
					if err != nil {
						continue
					}
					if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case err, ok := <-sub.Errors():
					if !ok {
						return
					}
					if werr := c.WriteJSON(fiber.Map{"error": err.Error()}); werr != nil {
						return
					}
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		sub.Close()
		<-done
	}))
}
