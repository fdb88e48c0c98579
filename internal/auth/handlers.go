package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/login", func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username and password required")
		}
		profile, tokens, err := svc.Login(c.Context(), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"profile": profile, "tokens": tokens})
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		token, err := refreshToken(c)
		if err != nil {
			return err
		}
		userID, err := svc.ValidateRefreshToken(c.Context(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		tokens, err := svc.GenerateTokens(c.Context(), userID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(tokens)
	})

	r.Post("/logout", func(c *fiber.Ctx) error {
		token, err := refreshToken(c)
		if err != nil {
			return err
		}
		if err := svc.Logout(c.Context(), token); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Lets other services check a token without sharing the secret.
	r.Get("/jwt/verify", func(c *fiber.Ctx) error {
		bearer := bearerFromHeader(c.Get("Authorization"))
		if bearer == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		userID, err := svc.ValidateAccessToken(bearer)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})

	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		session, err := RequireSession(c)
		if err != nil {
			return err
		}
		profile, err := svc.Profile(c.Context(), session.UserID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(profile)
	})
}

func refreshToken(c *fiber.Ctx) (string, error) {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "refresh_token required")
	}
	return req.RefreshToken, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrProfileNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrUsernameTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
