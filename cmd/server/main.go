package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"roster/internal/platform/config"
	"roster/internal/platform/httpserver"
	"roster/internal/platform/jwt"
	"roster/internal/platform/logger"
	platformmetrics "roster/internal/platform/metrics"
	"roster/internal/training/handler"
	trainingmetrics "roster/internal/training/metrics"
	"roster/internal/training/service"
	id "roster/pkg/domain"
	"roster/pkg/platform/audit/outbox"
	"roster/pkg/platform/audit/publisher"
	"roster/pkg/platform/httputil"
	"roster/pkg/platform/middleware/request"
	"roster/pkg/platform/middleware/requesttime"
)

// main wires config, storage, the training service and the HTTP surface, then
// runs the server and the outbox relay until SIGINT/SIGTERM.
func main() {
	configPath := flag.String("config", ".", "directory holding roster.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := platformmetrics.New(reg)
	domainMetrics := trainingmetrics.New(reg)

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close()

	pub := publisher.NewPublisher(b.outbox, publisher.WithAsyncBuffer(256), publisher.WithLogger(log))
	defer pub.Close()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(domainMetrics),
		service.WithAuditPublisher(pub),
	}
	if b.gridCache != nil {
		opts = append(opts, service.WithGridCache(b.gridCache))
	}
	svc := service.New(b.stores, b.uow, opts...)

	jwtService := jwt.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer)
	if cfg.UsesDevSigningKey() {
		token, err := jwtService.GenerateAccessToken(id.UserID(uuid.New()), "Development Coordinator", 24*time.Hour)
		if err == nil {
			log.Warn("using development signing key", "dev_token", token)
		}
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(requesttime.Middleware)
	r.Use(httpMetrics.Middleware)

	r.Handle("/metrics", platformmetrics.Handler(reg))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := b.health(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": b.name})
	})
	handler.New(svc, jwt.NewMiddlewareAdapter(jwtService), log).Register(r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, httpserver.New(cfg.Server.Addr, r), cfg.Server.ShutdownTimeout, log)
	})
	if len(cfg.Kafka.Brokers) > 0 {
		client, err := outbox.NewClient(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := outbox.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, 3); err != nil {
			log.Warn("could not ensure audit topic", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
		relay := outbox.New(b.outbox, client, cfg.Kafka.AuditTopic,
			outbox.WithLogger(log),
			outbox.WithInterval(cfg.Kafka.RelayEvery),
		)
		g.Go(func() error {
			if err := relay.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	log.Info("roster started", "addr", cfg.Server.Addr, "backend", b.name, "grid_cache", b.gridCache != nil)
	return g.Wait()
}
