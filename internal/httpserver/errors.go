package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coderr/internal/service"
)

// fail maps a service error to an HTTP error and logs it under event.
// Unexpected errors become a 500 whose cause only reaches the log.
func fail(l *zap.Logger, event string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(event, zap.Int("status", http.StatusBadRequest), zap.String("reason", "validation failed"), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, zap.Int("status", http.StatusBadRequest), zap.String("reason", "invalid credentials"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, service.ErrValidation):
		return warn(l, event, http.StatusBadRequest, detail(err, service.ErrValidation), err)
	case errors.Is(err, service.ErrUnauthenticated):
		return warn(l, event, http.StatusUnauthorized, "authentication required", err)
	case errors.Is(err, service.ErrForbidden):
		return warn(l, event, http.StatusForbidden, detail(err, service.ErrForbidden), err)
	case errors.Is(err, service.ErrNotFound):
		return warn(l, event, http.StatusNotFound, detail(err, service.ErrNotFound)+" not found", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return warn(l, event, http.StatusNotFound, "not found", err)
	case errors.Is(err, service.ErrConflict):
		return warn(l, event, http.StatusConflict, detail(err, service.ErrConflict), err)
	default:
		l.Error(event, zap.Int("status", http.StatusInternalServerError), zap.String("reason", "unexpected error"), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func warn(l *zap.Logger, event string, status int, msg string, err error) error {
	l.Warn(event, zap.Int("status", status), zap.String("reason", msg), zap.Error(err))
	return echo.NewHTTPError(status, msg)
}

// badRequest reports a malformed request that never reached the service.
func badRequest(l *zap.Logger, event, msg string, err error) error {
	return warn(l, event, http.StatusBadRequest, msg, err)
}

// detail strips the sentinel prefix: "conflict: already ordered" -> "already ordered".
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}
