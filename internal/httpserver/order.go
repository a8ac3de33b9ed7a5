package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "order.get_orders"))

	items, err := h.Svc.List(ctx, actorFrom(c))
	if err != nil {
		return fail(l, "get_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOrderResponses(items))
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "order.create_order"))

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order_error", "offer_detail_id must be a positive integer", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_order_error", err)
	}

	order, err := h.Svc.Create(ctx, actorFrom(c), req)
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", zap.Uint("order_id", order.ID))
	return c.JSON(http.StatusCreated, transport.NewOrderResponse(order))
}

func (h *OrderHTTP) PatchOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "order.patch_order"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "patch_order_error", "order id is not a positive integer", err)
	}

	var req transport.PatchOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_order_error", "invalid body", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, actorFrom(c), id, req)
	if err != nil {
		return fail(l, "patch_order_error", err)
	}

	l.Info("patch_order_success", zap.Uint("order_id", id), zap.String("status", order.Status))
	return c.JSON(http.StatusOK, transport.NewOrderResponse(order))
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "order.delete_order"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_order_error", "order id is not a positive integer", err)
	}

	if err := h.Svc.Delete(ctx, actorFrom(c), id); err != nil {
		return fail(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", zap.Uint("order_id", id))
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) OrderCount(c echo.Context) error {
	return h.count(c, false)
}

func (h *OrderHTTP) CompletedOrderCount(c echo.Context) error {
	return h.count(c, true)
}

func (h *OrderHTTP) count(c echo.Context, completed bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "order.count"), zap.Bool("completed", completed))

	id, err := pathID(c, "business_user_id")
	if err != nil {
		return badRequest(l, "order_count_error", "business user id is not a positive integer", err)
	}

	n, err := h.Svc.Count(ctx, id, completed)
	if err != nil {
		return fail(l, "order_count_error", err)
	}

	if completed {
		return c.JSON(http.StatusOK, transport.CompletedOrderCountResponse{CompletedOrderCount: n})
	}
	return c.JSON(http.StatusOK, transport.OrderCountResponse{OrderCount: n})
}
