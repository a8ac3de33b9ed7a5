package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Skotchmaster/coderr/internal/config"
	"github.com/Skotchmaster/coderr/internal/es"
	"github.com/Skotchmaster/coderr/internal/httpserver"
	"github.com/Skotchmaster/coderr/internal/mykafka"
	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/search"
	"github.com/Skotchmaster/coderr/internal/service"
	"github.com/Skotchmaster/coderr/internal/session"
	pkgdb "github.com/Skotchmaster/coderr/pkg/db"
	"github.com/Skotchmaster/coderr/pkg/logging"
	"github.com/Skotchmaster/coderr/pkg/metrics"
	authmw "github.com/Skotchmaster/coderr/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/coderr/pkg/middleware/logging"
)

func main() {
	envErr := godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Fatal("config", zap.Error(err))
	}

	logger := logging.New(cfg.LogLevel).With(zap.String("service", cfg.ServiceName))
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Info("no .env file, using process environment", zap.Error(envErr))
	}

	ctx := logging.IntoContext(context.Background(), logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx, db); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	r := &repo.GormRepo{DB: db}
	m := metrics.New(cfg.MetricsPrefix)

	var sessions service.SessionStore = &repo.SessionRepo{DB: db}
	var redisStore *session.RedisStore
	if cfg.RedisAddr != "" {
		redisStore, err = session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		sessions = redisStore
		logger.Info("sessions stored in redis", zap.String("addr", cfg.RedisAddr))
	}

	var publisher service.Publisher = mykafka.Discard{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.Fatal("kafka", zap.Error(err))
		}
		publisher = producer
		logger.Info("publishing events to kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	}
	events := &service.Emitter{Publisher: publisher, Counter: m}

	var index service.OfferIndex
	if cfg.ESURL != "" {
		client, err := es.NewClient(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			// search falls back to sql, so a missing cluster is not fatal
			logger.Warn("elasticsearch unavailable, offers searched in sql", zap.Error(err))
		} else {
			index = &search.OfferIndex{Client: client, Index: cfg.ESIndex}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:      r,
			Sessions:  sessions,
			Events:    events,
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
		}},
		Profiles: &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: r}},
		Offers:   &httpserver.OfferHTTP{Svc: &service.OfferService{Repo: r, Index: index, Events: events}},
		Orders:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: events}},
		Reviews:  &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r, Events: events}},
		Stats:    &httpserver.StatsHTTP{Svc: &service.StatsService{Repo: r}},
		AuthMW:   authmw.NewAuthMiddleware(cfg.JWTSecret, sessions),
		Ready:    r.Ping,
		Metrics:  m.Handler(),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", zap.Error(err))
		}
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("redis close", zap.Error(err))
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
