package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ownerGate lets users follow their own custom rows and any day plan that
// starts with "d".
type ownerGate struct{}

func (ownerGate) AuthorizeWatch(_ context.Context, userID, table string, f Filter) error {
	if f.Column == "user_id" && f.Value == userID {
		return nil
	}
	if table == TablePlaceVisits && f.Column == "day_plan_id" && f.Value != "" && f.Value[0] == 'd' {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrWatchForbidden, table)
}

// userHeader stands in for the JWT middleware: the X-User header becomes
// the session.
func userHeader(c *fiber.Ctx) error {
	if id := c.Get("X-User"); id != "" {
		auth.SetSession(c, auth.Session{UserID: id})
	}
	return c.Next()
}

func newStreamApp(hub *Hub) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub, ownerGate{}, userHeader)
	return app
}

func startStreamApp(t *testing.T, hub *Hub) string {
	t.Helper()
	app := newStreamApp(hub)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
		_ = ln.Close()
	})
	return "ws://" + ln.Addr().String()
}

func dialAs(user, url string) (*websocket.Conn, *http.Response, error) {
	header := http.Header{}
	if user != "" {
		header.Set("X-User", user)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func upgradeRequest(target, user string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	return req
}

func waitForSubscribers(t *testing.T, hub *Hub, table string, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		got := len(hub.subs[table])
		hub.mu.RUnlock()
		if got >= n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers on %s, got %d", n, table, got)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	app := newStreamApp(NewHub(nil, zerolog.Nop(), 1))

	req := httptest.NewRequest(http.MethodGet, "/stream/ws?table=trips", nil)
	req.Header.Set("X-User", "alice")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected non-200 for non-websocket request")
	}
}

func TestStreamHandlersWebsocketChange(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop(), 4)
	base := startStreamApp(t, hub)

	conn, _, err := dialAs("alice", base+"/stream/ws?table=place_visits&filter=day_plan_id=eq.d1")
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hub, TablePlaceVisits, 1)

	hub.Publish(context.Background(), visitChange("d2"))
	hub.Publish(context.Background(), visitChange("d1"))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	var ch Change
	if err := json.Unmarshal(msg, &ch); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ch.Keys["day_plan_id"] != "d1" || ch.Table != TablePlaceVisits {
		t.Fatalf("unexpected change %+v", ch)
	}

	conn.Close()
	deadline := time.Now().Add(time.Second)
	for {
		hub.mu.RLock()
		left := len(hub.subs[TablePlaceVisits])
		hub.mu.RUnlock()
		if left == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamHandlersRejectBeforeUpgrade(t *testing.T) {
	app := newStreamApp(NewHub(nil, zerolog.Nop(), 1))

	cases := []struct {
		name   string
		target string
		user   string
		want   int
	}{
		{"anonymous", "/stream/ws?table=custom_cities&filter=user_id=eq.alice", "", http.StatusUnauthorized},
		{"unknown table", "/stream/ws?table=secrets", "alice", http.StatusBadRequest},
		{"bad filter", "/stream/ws?table=custom_cities&filter=user_id", "alice", http.StatusBadRequest},
		{"unfiltered custom feed", "/stream/ws?table=custom_cities", "alice", http.StatusForbidden},
		{"someone else's custom feed", "/stream/ws?table=custom_places&filter=user_id=eq.bob", "alice", http.StatusForbidden},
	}
	for _, tc := range cases {
		resp, err := app.Test(upgradeRequest(tc.target, tc.user))
		if err != nil {
			t.Fatalf("%s: request error: %v", tc.name, err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.StatusCode)
		}
	}
}

func TestStreamHandlersOwnCustomFeed(t *testing.T) {
	hub := NewHub(nil, zerolog.Nop(), 4)
	base := startStreamApp(t, hub)

	conn, _, err := dialAs("alice", base+"/stream/ws?table=custom_cities&filter=user_id=eq.alice")
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	waitForSubscribers(t, hub, TableCustomCities, 1)

	hub.Publish(context.Background(), Change{Table: TableCustomCities, Op: OpInsert, Keys: map[string]string{"id": "c9", "user_id": "bob"}})
	hub.Publish(context.Background(), Change{Table: TableCustomCities, Op: OpInsert, Keys: map[string]string{"id": "c1", "user_id": "alice"}})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var ch Change
	if err := conn.ReadJSON(&ch); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if ch.Keys["id"] != "c1" {
		t.Fatalf("received another user's change %+v", ch)
	}
}
