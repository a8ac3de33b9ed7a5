package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/models"
	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "profile.get_profile"))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return badRequest(l, "get_profile_error", "user id is not a positive integer", err)
	}

	p, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return fail(l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewProfileDetail(p))
}

func (h *ProfileHTTP) PatchProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "profile.patch_profile"))

	userID, err := pathID(c, "user_id")
	if err != nil {
		return badRequest(l, "patch_profile_error", "user id is not a positive integer", err)
	}

	var req transport.PatchProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_profile_error", "invalid body", err)
	}

	p, err := h.Svc.Update(ctx, actorFrom(c), userID, req)
	if err != nil {
		return fail(l, "patch_profile_error", err)
	}

	l.Info("patch_profile_success", zap.Uint("profile_user", userID))
	return c.JSON(http.StatusOK, transport.NewProfileDetail(p))
}

func (h *ProfileHTTP) ListBusiness(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "profile.list_business"))

	items, err := h.Svc.ListByRole(ctx, models.RoleBusiness)
	if err != nil {
		return fail(l, "list_profiles_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewBusinessProfiles(items))
}

func (h *ProfileHTTP) ListCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "profile.list_customer"))

	items, err := h.Svc.ListByRole(ctx, models.RoleCustomer)
	if err != nil {
		return fail(l, "list_profiles_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCustomerProfiles(items))
}
