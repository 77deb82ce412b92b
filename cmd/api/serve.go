package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"entityapi/docs"
	"entityapi/internal/auth"
	"entityapi/internal/config"
	"entityapi/internal/database"
	"entityapi/internal/database/migration"
	"entityapi/internal/events"
	handlers "entityapi/internal/http/handler"
	"entityapi/internal/http/middleware"
	"entityapi/internal/logger"
	"entityapi/internal/otel"
	"entityapi/internal/repository/postgres"
	"entityapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, time.Local)
	defer func() { _ = log.Sync() }()
	defer logger.Install(log)()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return errors.Wrap(err, "init tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return errors.Wrap(err, "migrate")
	}

	jwtSvc, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return errors.Wrap(err, "init jwt")
	}
	if cfg.Auth.Username == "" || cfg.Auth.PasswordHash == "" {
		log.Warn("token_endpoint_disabled", zap.String("reason", "AUTH_USERNAME or AUTH_PASSWORD_HASH unset"))
	}

	publisher := newPublisher(cfg.Kafka, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("event_publisher_close_failed", zap.Error(err))
		}
	}()

	entitySvc := service.NewEntityService(postgres.NewEntityPostgres(db), publisher, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return errors.Wrap(err, "register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())
	app.Use(middleware.Logger(log))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	publicPaths := []string{middleware.MetricsPath}

	if cfg.SwaggerEnabled {
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get("X-Forwarded-Proto"); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}
			docs.SwaggerInfo.Host = c.Get("Host")
			docs.SwaggerInfo.Schemes = []string{scheme}
			return swagger.HandlerDefault(c)
		})
		publicPaths = append(publicPaths, "/swagger")
	}

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:          db,
		Entities:    entitySvc,
		Verifier:    jwtSvc,
		Authn:       auth.Credentials{Username: cfg.Auth.Username, PasswordHash: cfg.Auth.PasswordHash},
		Issuer:      jwtSvc,
		PublicPaths: publicPaths,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", zap.String("addr", ":"+cfg.Port))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

func newPublisher(c config.KafkaConfig, log *zap.Logger) events.Publisher {
	if len(c.Brokers) == 0 {
		log.Info("event_publishing_disabled")
		return events.Noop{}
	}
	log.Info("event_publishing_enabled", zap.Strings("brokers", c.Brokers), zap.String("topic", c.Topic))
	return events.NewKafkaPublisher(c.Brokers, c.Topic, log)
}
