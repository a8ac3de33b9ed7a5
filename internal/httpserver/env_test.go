package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/pkg/db"
	"github.com/Skotchmaster/coderr/pkg/metrics"
	authmw "github.com/Skotchmaster/coderr/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/coderr/pkg/middleware/logging"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "coderr.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, repo.Migrate(ctx, gdb))

	r := &repo.GormRepo{DB: gdb}
	sessions := &repo.SessionRepo{DB: gdb}
	m := metrics.New("coderr_test")
	events := &service.Emitter{Counter: m}
	secret := []byte("test-secret")

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(zap.NewNop()))
	e.Use(m.Middleware())

	Register(e, &Deps{
		Auth: &AuthHTTP{Svc: &service.AuthService{
			Repo: r, Sessions: sessions, Events: events, JWTSecret: secret, TokenTTL: time.Hour,
		}},
		Profiles: &ProfileHTTP{Svc: &service.ProfileService{Repo: r}},
		Offers:   &OfferHTTP{Svc: &service.OfferService{Repo: r, Events: events}},
		Orders:   &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events}},
		Reviews:  &ReviewHTTP{Svc: &service.ReviewService{Repo: r, Events: events}},
		Stats:    &StatsHTTP{Svc: &service.StatsService{Repo: r}},
		AuthMW:   authmw.NewAuthMiddleware(secret, sessions),
		Ready:    r.Ping,
		Metrics:  m.Handler(),
	})

	return &testEnv{T: t, E: e, Repo: r}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type session struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

func (env *testEnv) register(username, role string) session {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/api/registration", map[string]string{
		"username":          username,
		"email":             username + "@example.com",
		"password":          "s3cret-pass",
		"repeated_password": "s3cret-pass",
		"type":              role,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())
	return decode[session](env.T, rec)
}

func offerBody() map[string]any {
	tier := func(offerType string, price any, days int) map[string]any {
		return map[string]any{
			"title":                 offerType,
			"revisions":             -1,
			"delivery_time_in_days": days,
			"price":                 price,
			"features":              []string{"source files"},
			"offer_type":            offerType,
		}
	}
	return map[string]any{
		"title":       "Logo design",
		"description": "Vector logo",
		"details": []any{
			tier("basic", 100, 10),
			tier("standard", "300.00", 5),
			tier("premium", 500, 2),
		},
	}
}
