package middleware

import (
	"strings"

	"multibank/internal/errors"
	"multibank/internal/handlers"
	"multibank/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireSession creates a middleware that requires a valid session token
// issued by the password gate
func RequireSession(sessionService services.SessionServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			if err := sessionService.ValidateToken(tokenParts[1]); err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			return next(c)
		}
	}
}
