package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	authmw "github.com/Skotchmaster/coderr/pkg/middleware/auth"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "auth.register"))

	var req transport.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_error", "invalid body", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_error", err)
	}

	l.Info("register_success", zap.Uint("user_id", res.User.ID))
	return c.JSON(http.StatusOK, transport.NewAuthResponse(res.Token, res.User))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "auth.login"))

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}

	l.Info("login_success", zap.Uint("user_id", res.User.ID))
	return c.JSON(http.StatusOK, transport.NewAuthResponse(res.Token, res.User))
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "auth.logout"))

	id, _ := authmw.IdentityFrom(c)
	if err := h.Svc.Logout(ctx, id.TokenID); err != nil {
		return fail(l, "logout_error", err)
	}

	l.Info("logout_success")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "logged out"})
}
