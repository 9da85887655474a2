// Package middleware provides shared request processing: session
// verification, rate limiting and response caching.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aiverse/aiverse-api/internal/utils"
)

// SessionAuth validates the session cookie and injects the token's identity
// claims into the request context under "user_id", "email" and "name".
// A missing cookie, a malformed token and an expired token all produce the
// same 401 response so the failure mode is not observable from outside.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(utils.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return unauthenticated(c)
			}
			claims, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return unauthenticated(c)
			}
			c.Set("user_id", claims.Subject)
			c.Set("email", claims.Email)
			c.Set("name", claims.Name)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
}
