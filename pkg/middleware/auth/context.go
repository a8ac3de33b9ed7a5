package middleware

import "github.com/labstack/echo/v4"

// Identity is the authenticated caller as resolved by RequireAuth.
type Identity struct {
	UserID  uint
	Role    string
	IsAdmin bool
	TokenID string
}

// IdentityFrom reads the caller set by the auth middleware; ok is false on
// routes that were not authenticated.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(ctxUserID).(uint)
	if !ok || id == 0 {
		return Identity{}, false
	}
	role, _ := c.Get(ctxRole).(string)
	admin, _ := c.Get(ctxIsAdmin).(bool)
	jti, _ := c.Get(ctxTokenID).(string)
	return Identity{UserID: id, Role: role, IsAdmin: admin, TokenID: jti}, true
}
