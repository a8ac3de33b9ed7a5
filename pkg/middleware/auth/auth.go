package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/pkg/logging"
	"github.com/Skotchmaster/coderr/pkg/tokens"
)

const (
	ctxClaims  = "claims"
	ctxUserID  = "user_id"
	ctxRole    = "role"
	ctxIsAdmin = "is_admin"
	ctxTokenID = "jti"
)

// SessionChecker reports whether a token id is still live (not logged out).
type SessionChecker interface {
	Active(ctx context.Context, jti string) (bool, error)
}

type AuthMiddleware struct {
	JWTSecret []byte
	Sessions  SessionChecker
}

func NewAuthMiddleware(secret []byte, sessions SessionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		JWTSecret: secret,
		Sessions:  sessions,
	}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !claims.Admin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

// RequireRole authenticates and then admits only the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
			if !slices.Contains(roles, claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "only "+strings.Join(roles, "/")+" users may do this")
			}
			return nil
		})
	}
}

func (m *AuthMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		ContextKey:  ctxClaims,
		TokenLookup: "header:Authorization:Bearer ,header:Authorization:Token ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.AccessClaimsFromToken(auth, m.JWTSecret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logging.FromContext(c.Request().Context()).Warn("auth_failed",
				zap.Int("status", http.StatusUnauthorized), zap.Error(err))
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication credentials were not provided or are invalid")
		},
	})

	return parse(func(c echo.Context) error {
		claims, ok := c.Get(ctxClaims).(*tokens.AccessClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if m.Sessions != nil {
			active, err := m.Sessions.Active(c.Request().Context(), claims.ID)
			if err != nil {
				logging.FromContext(c.Request().Context()).Error("session_lookup_failed",
					zap.Int("status", http.StatusInternalServerError), zap.Error(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot verify session")
			}
			if !active {
				return echo.NewHTTPError(http.StatusUnauthorized, "session has ended")
			}
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setUserContext(c, claims, userID)
		return next(c)
	})
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims, userID uint) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxIsAdmin, claims.Admin)
	c.Set(ctxTokenID, claims.ID)

	l := logging.FromContext(c.Request().Context()).With(zap.Uint("user_id", userID))
	c.SetRequest(c.Request().WithContext(logging.IntoContext(c.Request().Context(), l)))
}

