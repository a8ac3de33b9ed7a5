package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coderr/internal/models"
	authmw "github.com/Skotchmaster/coderr/pkg/middleware/auth"
)

type Deps struct {
	Auth     *AuthHTTP
	Profiles *ProfileHTTP
	Offers   *OfferHTTP
	Orders   *OrderHTTP
	Reviews  *ReviewHTTP
	Stats    *StatsHTTP

	AuthMW *authmw.AuthMiddleware
	// Ready reports whether the storage layer answers; nil means always ready.
	Ready   func(ctx context.Context) error
	Metrics http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = requestValidator{}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	auth := d.AuthMW.RequireAuth
	business := d.AuthMW.RequireRole(models.RoleBusiness)
	customer := d.AuthMW.RequireRole(models.RoleCustomer)

	api := e.Group("/api")

	api.POST("/registration", d.Auth.Register)
	api.POST("/login", d.Auth.Login)
	api.POST("/logout", d.Auth.Logout, auth)

	api.GET("/profile/:user_id", d.Profiles.GetProfile, auth)
	api.PATCH("/profile/:user_id", d.Profiles.PatchProfile, auth)
	api.GET("/profiles/business", d.Profiles.ListBusiness, auth)
	api.GET("/profiles/customer", d.Profiles.ListCustomer, auth)

	offers := api.Group("/offers")
	offers.GET("", d.Offers.GetOffers)
	offers.POST("", d.Offers.CreateOffer, business)
	offers.GET("/:id", d.Offers.GetOffer, auth)
	offers.PATCH("/:id", d.Offers.PatchOffer, auth)
	offers.DELETE("/:id", d.Offers.DeleteOffer, auth)

	details := api.Group("/offerdetails", auth)
	details.GET("/:id", d.Offers.GetOfferDetail)
	details.PATCH("/:id", d.Offers.PatchOfferDetail)
	details.DELETE("/:id", d.Offers.DeleteOfferDetail)

	orders := api.Group("/orders")
	orders.GET("", d.Orders.GetOrders, auth)
	orders.POST("", d.Orders.CreateOrder, customer)
	orders.PATCH("/:id", d.Orders.PatchOrder, auth)
	orders.DELETE("/:id", d.Orders.DeleteOrder, d.AuthMW.RequireAdmin)
	api.GET("/order-count/:business_user_id", d.Orders.OrderCount, auth)
	api.GET("/completed-order-count/:business_user_id", d.Orders.CompletedOrderCount, auth)

	reviews := api.Group("/reviews")
	reviews.GET("", d.Reviews.GetReviews, auth)
	reviews.POST("", d.Reviews.CreateReview, customer)
	reviews.PATCH("/:id", d.Reviews.PatchReview, auth)
	reviews.DELETE("/:id", d.Reviews.DeleteReview, auth)

	api.GET("/base-info", d.Stats.BaseInfo, auth)
}
