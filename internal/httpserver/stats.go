package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type StatsHTTP struct {
	Svc *service.StatsService
}

func (h *StatsHTTP) BaseInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "stats.base_info"))

	info, err := h.Svc.BaseInfo(ctx)
	if err != nil {
		return fail(l, "base_info_error", err)
	}
	return c.JSON(http.StatusOK, transport.BaseInfoResponse{
		ReviewCount:          info.ReviewCount,
		AverageRating:        info.AverageRating,
		BusinessProfileCount: info.BusinessProfileCount,
		OfferCount:           info.OfferCount,
	})
}
