package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pizzahub/pizza-service/internal/core/domain"
	"github.com/pizzahub/pizza-service/internal/core/ports"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// Auth resolves the bearer token to a user when one is presented and stores
// it in the request context. It never rejects: routes that demand a caller
// add RequireUser. Resolution needs both a verifiable token and an active
// session; a logged-out token resolves to nothing.
func Auth(auth ports.AuthService, tracker ports.ActivityTracker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return next(c)
			}

			c.Set(userKey, user)
			c.Set(tokenKey, token)
			if tracker != nil {
				tracker.Touch(c.Request().Context(), domain.TokenSignature(token))
			}
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not resolve to a user.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if AuthUser(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}

// AuthUser returns the authenticated caller, or nil.
func AuthUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}

// AuthToken returns the raw bearer token of the authenticated caller.
func AuthToken(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
