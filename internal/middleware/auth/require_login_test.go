package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	authmw "github.com/marketfair/api/internal/middleware/auth"
	"github.com/marketfair/api/internal/tokens"
)

var secret = []byte("test_secret")

func newGuardedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, ok := authmw.UserID(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "no identity")
		}
		return c.JSON(http.StatusOK, echo.Map{"id": id, "email": authmw.Email(c)})
	}, authmw.Middleware(secret))
	return e
}

func do(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareNoHeader(t *testing.T) {
	e := newGuardedEcho()
	rec := do(e, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareHeaderWithoutToken(t *testing.T) {
	e := newGuardedEcho()

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc"} {
		rec := do(e, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	e := newGuardedEcho()
	rec := do(e, "Bearer not-a-jwt")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddlewareWrongSecret(t *testing.T) {
	e := newGuardedEcho()

	token, err := tokens.SignAccessToken(7, "a@x.com", []byte("other_secret"))
	require.NoError(t, err)

	rec := do(e, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddlewareExpiredToken(t *testing.T) {
	e := newGuardedEcho()

	claims := tokens.AccessClaims{
		UserID: 7,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	rec := do(e, "Bearer "+expired)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMiddlewareValidToken(t *testing.T) {
	e := newGuardedEcho()

	token, err := tokens.SignAccessToken(7, "a@x.com", secret)
	require.NoError(t, err)

	rec := do(e, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":7`)
	require.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
}
