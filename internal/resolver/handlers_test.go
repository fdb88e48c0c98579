package resolver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-vietrip/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestResolveHandlers(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/resolve"), New(newStore(), zerolog.Nop()), func(c *fiber.Ctx) error {
		auth.SetSession(c, auth.Session{UserID: "u1"})
		return c.Next()
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/resolve/cities/cc:tok-city", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var city ResolvedCity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&city))
	require.Equal(t, "Ha Giang", city.Name)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resolve/places/hn06", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resolve/places/cp:none", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resolve/places/cp:tok-place", nil))
	require.NoError(t, err)
	var place ResolvedPlace
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&place))
	require.Equal(t, "landmark", place.Category)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resolve/cities/hanoi/places", nil))
	require.NoError(t, err)
	var places []ResolvedPlace
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&places))
	require.NotEmpty(t, places)
}

func TestResolveHandlersHideOthersCustomCities(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/resolve"), New(newStore(), zerolog.Nop()), func(c *fiber.Ctx) error {
		auth.SetSession(c, auth.Session{UserID: "stranger"})
		return c.Next()
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/resolve/cities/cc:tok-city", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/resolve/places/cp:tok-place", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
