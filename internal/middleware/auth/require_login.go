package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marketfair/api/internal/tokens"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// Middleware guards a route group with a bearer token. A missing
// header or a header without a token rejects with 401 before any
// verification; a token that fails verification rejects with 403.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := bearerToken(header)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.AccessClaimsFromToken(token, secret)
			if err != nil || claims == nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the caller's id attached by Middleware.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CtxUserID).(uint)
	return id, ok
}

func Email(c echo.Context) string {
	email, _ := c.Get(CtxEmail).(string)
	return email
}
