package live

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"backend-vietrip/internal/auth"
	"backend-vietrip/internal/itinerary"
	"backend-vietrip/internal/livequery"
	"backend-vietrip/internal/stream"
	"backend-vietrip/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeTrips struct{}

func (fakeTrips) Authorize(_ context.Context, tripID, userID string) (string, error) {
	if tripID != "t1" {
		return "", trip.ErrNotFound
	}
	if userID != "member" {
		return "", trip.ErrForbidden
	}
	return trip.RoleMember, nil
}

func (fakeTrips) AuthorizeDayPlan(_ context.Context, dayPlanID, userID string) (trip.DayPlan, error) {
	if userID != "member" {
		return trip.DayPlan{}, trip.ErrForbidden
	}
	return trip.DayPlan{ID: dayPlanID, TripID: "t1", DayNumber: 1}, nil
}

func (fakeTrips) DayPlans(_ context.Context, tripID string) ([]trip.DayPlan, error) {
	return []trip.DayPlan{{ID: "d1", TripID: tripID, DayNumber: 1}}, nil
}

type fakeVisits struct {
	n      atomic.Int32
	viewer atomic.Value
}

func (f *fakeVisits) VisitViews(_ context.Context, viewerID, dayPlanID string) ([]itinerary.VisitView, error) {
	f.viewer.Store(viewerID)
	views := make([]itinerary.VisitView, f.n.Add(1))
	for i := range views {
		views[i].Visit = itinerary.Visit{DayPlanID: dayPlanID, OrderIndex: i}
	}
	return views, nil
}

func asUser(id string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth.SetSession(c, auth.Session{UserID: id})
		return c.Next()
	}
}

func newApp(hub *stream.Hub, visits *fakeVisits, user string) *fiber.App {
	app := fiber.New()
	h := NewHandler(livequery.HubSubscriber{Hub: hub}, fakeTrips{}, visits, zerolog.Nop())
	h.RegisterRoutes(app.Group("/live"), asUser(user))
	return app
}

func start(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
		_ = ln.Close()
	})
	return "ws://" + ln.Addr().String()
}

func upgradeRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestLiveRequiresUpgrade(t *testing.T) {
	app := newApp(stream.NewHub(nil, zerolog.Nop(), 4), &fakeVisits{}, "member")
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/live/trips/t1/days", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestLiveChecksAccessBeforeUpgrade(t *testing.T) {
	app := newApp(stream.NewHub(nil, zerolog.Nop(), 4), &fakeVisits{}, "stranger")

	resp, err := app.Test(upgradeRequest("/live/trips/t1/days"))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(upgradeRequest("/live/trips/t9/days"))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(upgradeRequest("/live/days/d1/visits"))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLiveVisitsPushesSnapshotPerChange(t *testing.T) {
	hub := stream.NewHub(nil, zerolog.Nop(), 4)
	defer hub.Close()
	visits := &fakeVisits{}
	base := start(t, newApp(hub, visits, "member"))

	conn, _, err := websocket.DefaultDialer.Dial(base+"/live/days/d1/visits", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first Snapshot[[]itinerary.VisitView]
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "ready", first.State)
	require.Len(t, first.Data, 1)

	hub.Publish(context.Background(), stream.Change{
		Table: stream.TablePlaceVisits,
		Op:    stream.OpInsert,
		Keys:  map[string]string{"day_plan_id": "d1"},
	})

	var next Snapshot[[]itinerary.VisitView]
	require.NoError(t, conn.ReadJSON(&next))
	require.Len(t, next.Data, 2)
	require.Equal(t, "d1", next.Data[1].DayPlanID)
}

func TestLiveVisitsRefreshOnCustomPlaceChange(t *testing.T) {
	hub := stream.NewHub(nil, zerolog.Nop(), 4)
	defer hub.Close()
	visits := &fakeVisits{}
	base := start(t, newApp(hub, visits, "member"))

	conn, _, err := websocket.DefaultDialer.Dial(base+"/live/days/d1/visits", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first Snapshot[[]itinerary.VisitView]
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, "member", visits.viewer.Load())

	// a co-member renames a custom place used on this day
	hub.Publish(context.Background(), stream.Change{
		Table: stream.TableCustomPlaces,
		Op:    stream.OpUpdate,
		Keys:  map[string]string{"id": "p1", "user_id": "other"},
	})

	var next Snapshot[[]itinerary.VisitView]
	require.NoError(t, conn.ReadJSON(&next))
	require.Len(t, next.Data, 2)
}

func TestLiveTripDays(t *testing.T) {
	hub := stream.NewHub(nil, zerolog.Nop(), 4)
	defer hub.Close()
	base := start(t, newApp(hub, &fakeVisits{}, "member"))

	conn, _, err := websocket.DefaultDialer.Dial(base+"/live/trips/t1/days", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var snap Snapshot[[]trip.DayPlan]
	require.NoError(t, conn.ReadJSON(&snap))
	require.Len(t, snap.Data, 1)
	require.Equal(t, "t1", snap.Data[0].TripID)
}
