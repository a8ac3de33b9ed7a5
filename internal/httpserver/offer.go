package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/internal/util"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type OfferHTTP struct {
	Svc *service.OfferService
}

func (h *OfferHTTP) GetOffers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.get_offers"))

	qp := &queryParser{c: c}
	q := transport.OfferListQuery{
		CreatorID:       qp.uintPtr("creator_id"),
		MinPrice:        qp.decimalPtr("min_price"),
		MaxDeliveryTime: qp.intPtr("max_delivery_time"),
		Search:          strings.TrimSpace(c.QueryParam("search")),
		Ordering:        c.QueryParam("ordering"),
		Page:            util.ParseIntDefault(c.QueryParam("page"), 1),
		PageSize:        util.ParseIntDefault(c.QueryParam("page_size"), util.DefaultPageSize),
	}
	if err := qp.err(); err != nil {
		return fail(l, "get_offers_error", err)
	}

	total, items, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "get_offers_error", err)
	}

	l.Info("get_offers_success", zap.Int64("total", total))
	return c.JSON(http.StatusOK, transport.OfferPage{
		Data: transport.NewOfferResponses(items),
		Meta: util.Meta(q.Page, q.PageSize, total),
	})
}

func (h *OfferHTTP) GetOffer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.get_offer"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_offer_error", "offer id is not a positive integer", err)
	}

	offer, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_offer_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOfferResponse(offer))
}

func (h *OfferHTTP) CreateOffer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.create_offer"))

	var req transport.CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_offer_error", "invalid body", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_offer_error", err)
	}

	offer, err := h.Svc.Create(ctx, actorFrom(c), req)
	if err != nil {
		return fail(l, "create_offer_error", err)
	}

	l.Info("create_offer_success", zap.Uint("offer_id", offer.ID))
	return c.JSON(http.StatusCreated, transport.NewOfferWriteResponse(offer))
}

func (h *OfferHTTP) PatchOffer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.patch_offer"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "patch_offer_error", "offer id is not a positive integer", err)
	}

	var req transport.PatchOfferRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_offer_error", "invalid body", err)
	}

	offer, err := h.Svc.Update(ctx, actorFrom(c), id, req)
	if err != nil {
		return fail(l, "patch_offer_error", err)
	}

	l.Info("patch_offer_success", zap.Uint("offer_id", id))
	return c.JSON(http.StatusOK, transport.NewOfferWriteResponse(offer))
}

func (h *OfferHTTP) DeleteOffer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.delete_offer"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_offer_error", "offer id is not a positive integer", err)
	}

	if err := h.Svc.Delete(ctx, actorFrom(c), id); err != nil {
		return fail(l, "delete_offer_error", err)
	}

	l.Info("delete_offer_success", zap.Uint("offer_id", id))
	return c.NoContent(http.StatusNoContent)
}

func (h *OfferHTTP) GetOfferDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.get_offer_detail"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_offer_detail_error", "offer detail id is not a positive integer", err)
	}

	d, err := h.Svc.GetDetail(ctx, id)
	if err != nil {
		return fail(l, "get_offer_detail_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewOfferDetailResponse(d))
}

func (h *OfferHTTP) PatchOfferDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.patch_offer_detail"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "patch_offer_detail_error", "offer detail id is not a positive integer", err)
	}

	var req transport.PatchOfferDetailRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_offer_detail_error", "invalid body", err)
	}

	d, err := h.Svc.UpdateDetail(ctx, actorFrom(c), id, req)
	if err != nil {
		return fail(l, "patch_offer_detail_error", err)
	}

	l.Info("patch_offer_detail_success", zap.Uint("offer_detail_id", id))
	return c.JSON(http.StatusOK, transport.NewOfferDetailResponse(d))
}

func (h *OfferHTTP) DeleteOfferDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "offer.delete_offer_detail"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_offer_detail_error", "offer detail id is not a positive integer", err)
	}

	if err := h.Svc.DeleteDetail(ctx, actorFrom(c), id); err != nil {
		return fail(l, "delete_offer_detail_error", err)
	}

	l.Info("delete_offer_detail_success", zap.Uint("offer_detail_id", id))
	return c.NoContent(http.StatusNoContent)
}
