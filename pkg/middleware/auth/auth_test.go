package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coderr/pkg/tokens"
)

var secret = []byte("test-jwt-secret")

type fakeSessions map[string]bool

func (f fakeSessions) Active(_ context.Context, jti string) (bool, error) {
	return f[jti], nil
}

func newEcho(t *testing.T, sessions fakeSessions) *echo.Echo {
	t.Helper()
	m := NewAuthMiddleware(secret, sessions)

	whoami := func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.JSON(http.StatusOK, id)
	}

	e := echo.New()
	e.GET("/any", whoami, m.RequireAuth)
	e.GET("/business", whoami, m.RequireRole("business"))
	e.GET("/admin", whoami, m.RequireAdmin)
	return e
}

func issue(t *testing.T, sessions fakeSessions, userID uint, role string, admin bool) string {
	t.Helper()
	token, claims, err := tokens.NewAccessToken(secret, userID, role, admin, time.Hour)
	require.NoError(t, err)
	sessions[claims.ID] = true
	return token
}

func do(e *echo.Echo, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	sessions := fakeSessions{}
	e := newEcho(t, sessions)
	token := issue(t, sessions, 7, "customer", false)

	assert.Equal(t, http.StatusUnauthorized, do(e, "/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/any", "Bearer nope").Code)

	rec := do(e, "/any", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"UserID":7`)
	assert.Contains(t, rec.Body.String(), `"Role":"customer"`)

	assert.Equal(t, http.StatusOK, do(e, "/any", "Token "+token).Code)
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	sessions := fakeSessions{}
	e := newEcho(t, sessions)
	token := issue(t, sessions, 7, "customer", false)

	claims, err := tokens.AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	sessions[claims.ID] = false

	assert.Equal(t, http.StatusUnauthorized, do(e, "/any", "Bearer "+token).Code)
}

func TestRequireRoleAndAdmin(t *testing.T) {
	sessions := fakeSessions{}
	e := newEcho(t, sessions)
	customer := issue(t, sessions, 1, "customer", false)
	business := issue(t, sessions, 2, "business", false)
	admin := issue(t, sessions, 3, "customer", true)

	assert.Equal(t, http.StatusForbidden, do(e, "/business", "Bearer "+customer).Code)
	assert.Equal(t, http.StatusOK, do(e, "/business", "Bearer "+business).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, "/business", "").Code)

	assert.Equal(t, http.StatusForbidden, do(e, "/admin", "Bearer "+business).Code)
	assert.Equal(t, http.StatusOK, do(e, "/admin", "Bearer "+admin).Code)
}
