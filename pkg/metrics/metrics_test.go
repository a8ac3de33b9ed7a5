package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	m := New("test")

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/offers/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusForbidden, "no") })

	for _, path := range []string{"/offers/1", "/offers/2", "/boom"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/offers/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/boom", "403")))
}

func TestEventEmittedAndHandler(t *testing.T) {
	m := New("test")
	m.EventEmitted("order_created", "published")
	m.EventEmitted("order_created", "published")
	m.EventEmitted("order_created", "failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DomainEventsTotal.WithLabelValues("order_created", "published")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_domain_events_total"))
}
