package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

// Session identifies the caller of a request. Handlers read it with
// SessionFrom instead of reaching for a process-wide current user.
type Session struct {
	UserID string
}

func SetSession(c *fiber.Ctx, s Session) {
	c.Locals(sessionKey, s)
}

func SessionFrom(c *fiber.Ctx) (Session, bool) {
	return SessionLookup(func(key string) any { return c.Locals(key) })
}

// SessionLookup reads the session out of a raw locals lookup. Websocket
// handlers use it once the request context is gone.
func SessionLookup(locals func(key string) any) (Session, bool) {
	s, ok := locals(sessionKey).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}

// RequireSession returns the caller's session or a 401.
func RequireSession(c *fiber.Ctx) (Session, error) {
	s, ok := SessionFrom(c)
	if !ok {
		return Session{}, fiber.NewError(fiber.StatusUnauthorized, "session required")
	}
	return s, nil
}

// JWTMiddleware validates bearer tokens and stores the Session in locals.
func JWTMiddleware(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid || claims.UserID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "token invalid")
		}

		SetSession(c, Session{UserID: claims.UserID})
		return c.Next()
	}
}

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
