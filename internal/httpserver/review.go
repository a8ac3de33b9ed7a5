package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/transport"
	"github.com/Skotchmaster/coderr/pkg/logging"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "review.get_reviews"))

	qp := &queryParser{c: c}
	q := transport.ReviewListQuery{
		BusinessUserID: qp.uintPtr("business_user_id"),
		ReviewerID:     qp.uintPtr("reviewer_id"),
		Ordering:       c.QueryParam("ordering"),
	}
	if err := qp.err(); err != nil {
		return fail(l, "get_reviews_error", err)
	}

	items, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "get_reviews_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewReviewResponses(items))
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "review.create_review"))

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_review_error", "invalid body", err)
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_review_error", err)
	}

	review, err := h.Svc.Create(ctx, actorFrom(c), req)
	if err != nil {
		return fail(l, "create_review_error", err)
	}

	l.Info("create_review_success", zap.Uint("review_id", review.ID))
	return c.JSON(http.StatusCreated, transport.NewReviewResponse(review))
}

func (h *ReviewHTTP) PatchReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "review.patch_review"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "patch_review_error", "review id is not a positive integer", err)
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_review_error", "invalid body", err)
	}

	review, err := h.Svc.Update(ctx, actorFrom(c), id, req)
	if err != nil {
		return fail(l, "patch_review_error", err)
	}

	l.Info("patch_review_success", zap.Uint("review_id", id))
	return c.JSON(http.StatusOK, transport.NewReviewResponse(review))
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With(zap.String("handler", "review.delete_review"))

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_review_error", "review id is not a positive integer", err)
	}

	if err := h.Svc.Delete(ctx, actorFrom(c), id); err != nil {
		return fail(l, "delete_review_error", err)
	}

	l.Info("delete_review_success", zap.Uint("review_id", id))
	return c.NoContent(http.StatusNoContent)
}
