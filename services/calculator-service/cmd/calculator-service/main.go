package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/md-rashed-zaman/costcalc/libs/auth"
	"github.com/md-rashed-zaman/costcalc/libs/config"
	"github.com/md-rashed-zaman/costcalc/libs/db"
	"github.com/md-rashed-zaman/costcalc/libs/httpx"
	"github.com/md-rashed-zaman/costcalc/libs/kafkax"
	otelx "github.com/md-rashed-zaman/costcalc/libs/otel"
	"github.com/md-rashed-zaman/costcalc/libs/runtime"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/booking"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/calendar"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/handlers"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/outbox"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	service := config.String("SERVICE_NAME", "calculator-service")
	port, err := config.Port("PORT", "5000")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL, db.Options{})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	if config.Bool("DB_AUTO_MIGRATE", true) {
		if err := pool.ApplySchema(ctx, storage.Schema); err != nil {
			logger.Error("schema migration failed", "err", err)
			panic(err)
		}
	}

	admins := storage.NewAdminRepository(pool)
	seedAdmin(ctx, admins, logger)

	brokers := kafkax.SplitBrokers(config.String("KAFKA_BROKERS", ""))
	var outboxRepo *outbox.Repository
	if len(brokers) > 0 {
		outboxRepo = outbox.NewRepository()
	}
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	notifier, err := calendar.New(ctx, calendar.Config{
		CalendarID:          config.String("GOOGLE_CALENDAR_ID", ""),
		ServiceAccountEmail: config.String("GOOGLE_SERVICE_ACCOUNT_EMAIL", ""),
		PrivateKey:          config.String("GOOGLE_PRIVATE_KEY", ""),
		PrivateKeyID:        config.String("GOOGLE_PRIVATE_KEY_ID", ""),
		ProjectID:           config.String("GOOGLE_PROJECT_ID", ""),
		ClientID:            config.String("GOOGLE_CLIENT_ID", ""),
		TimeZone:            config.String("CALENDAR_TIMEZONE", "America/Caracas"),
	}, logger)
	if err != nil {
		logger.Error("google calendar init failed; continuing without calendar sync", "err", err)
		notifier = calendar.Disabled{}
	}

	jwtSecret := config.String("JWT_SECRET", "")
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set; using an insecure development secret")
		jwtSecret = "dev-secret-change-me"
	}
	signer := auth.NewHS256Signer(jwtSecret, time.Duration(config.Int("JWT_TTL_HOURS", 168))*time.Hour)

	checks := []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}
	if len(brokers) > 0 {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}

	limiter := httpx.Limiter(httpx.NewMemoryLimiter(config.Int("RATE_LIMIT_PER_MINUTE", 60), time.Minute))
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       config.Int("REDIS_DB", 0),
		})
		defer rdb.Close()
		limiter = httpx.NewRedisLimiter(rdb, config.Int("RATE_LIMIT_PER_MINUTE", 60), time.Minute, service)
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	mux := runtime.NewBaseMuxWithReady(checks...)
	handlers.Routes{
		Auth:         handlers.NewAuthHandler(admins, signer, logger),
		Items:        handlers.NewItemHandler(storage.NewItemRepository(pool), logger),
		Appointments: handlers.NewAppointmentHandler(booking.NewService(storage.NewAppointmentRepository(pool, outboxRepo), notifier, logger), logger),
		RequireAdmin: httpx.RequireBearer(signer),
		PublicWrite:  httpx.WithRateLimit(limiter, logger, true),
	}.Register(mux)

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: config.List("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", httpx.RequestIDHeader},
			MaxAge:         10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(int64(config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20))),
		httpx.WithTimeout(config.Seconds("REQUEST_TIMEOUT_SECONDS", 30*time.Second)),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "calculator")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// seedAdmin creates the ADMIN_USERNAME account on first start when a password is given.
func seedAdmin(ctx context.Context, admins *storage.AdminRepository, logger *slog.Logger) {
	username := config.String("ADMIN_USERNAME", "")
	password := config.String("ADMIN_PASSWORD", "")
	if username == "" || password == "" {
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.Error("admin password hash failed", "err", err)
		return
	}
	created, err := admins.EnsureAdmin(ctx, username, hash)
	if err != nil {
		logger.Error("admin seed failed", "err", err)
		return
	}
	if created {
		logger.Info("admin account created", "username", username)
	}
}
