package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dorm-delivery/internal/app"
	"dorm-delivery/internal/handlers/rest/admin_stats_get"
	"dorm-delivery/internal/handlers/rest/auth_login_post"
	"dorm-delivery/internal/handlers/rest/auth_register_post"
	"dorm-delivery/internal/handlers/rest/deliveries_get"
	"dorm-delivery/internal/handlers/rest/delivery_available_get"
	"dorm-delivery/internal/handlers/rest/delivery_get"
	"dorm-delivery/internal/handlers/rest/delivery_my_get"
	"dorm-delivery/internal/handlers/rest/delivery_pay_post"
	"dorm-delivery/internal/handlers/rest/delivery_post"
	"dorm-delivery/internal/handlers/rest/delivery_release_post"
	"dorm-delivery/internal/handlers/rest/delivery_status_post"
	"dorm-delivery/internal/handlers/rest/healthcheck_head"
	"dorm-delivery/internal/handlers/rest/root_get"
	"dorm-delivery/internal/handlers/rest/users_me_get"
	"dorm-delivery/internal/pkg/config"
	"dorm-delivery/internal/pkg/dotenv"
	"dorm-delivery/internal/pkg/grpcserver"
	"dorm-delivery/internal/pkg/kafka"
	metrics_system "dorm-delivery/internal/pkg/metrics"
	"dorm-delivery/internal/pkg/middlewares/auth"
	"dorm-delivery/internal/pkg/middlewares/cors"
	"dorm-delivery/internal/pkg/middlewares/graceful_shutdown"
	"dorm-delivery/internal/pkg/middlewares/metrics"
	"dorm-delivery/internal/pkg/middlewares/rate_limiter"
	"dorm-delivery/internal/pkg/middlewares/timeout"
	"dorm-delivery/internal/pkg/migrations"
	"dorm-delivery/internal/pkg/postgres"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/logger/zap_adapter"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	envErr := dotenv.Load(".env")

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dorm-delivery application")

	switch {
	case errors.Is(envErr, dotenv.ErrNotFound):
		mainLog.Warn("No .env file found, using system environment variables")
	case envErr != nil:
		mainLog.Error("failed to load .env file", logger.NewField("error", envErr))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdownCtx и ongoingCtx намеренно наследуются от context.Background(), это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrationsEnabled {
		if err := migrations.Up(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		err := producer.Close()
		if err != nil {
			runLog.Error("failed to close kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// фоновые задачи живут до stopOngoingGracefully, а не до сигнала
	businessApp, err := application.InitializeApplication(ongoingCtx, log, pool, pgxv5.DefaultCtxGetter, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ongoingCtx, metrics_system.DefaultCollectInterval)

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// gRPC health сервер
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPC listen: %w", err)
	}
	healthServer := grpcserver.New(log)
	healthServer.SetServing()

	grpcServerErr := make(chan error, 1)
	go func() {
		defer close(grpcServerErr)
		if err := healthServer.Serve(grpcListener); err != nil {
			grpcServerErr <- err
		}
	}()
	// gRPC health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr:
		return fmt.Errorf("gRPC health server: %w", err)
	case err := <-pprofServerErr: // nil канал при выключенном pprof, кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.SetNotServing()

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	healthServer.Stop(shutdownCtx)

	stopOngoingGracefully()
	businessApp.BackgroundWorkers.Wait()

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, app.RateLimiter))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/", root_get.New(log)).Methods(http.MethodGet)
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/auth/register", auth_register_post.New(log, app.ServiceUser)).Methods(http.MethodPost)
	api.Handle("/auth/login", auth_login_post.New(log, app.ServiceUser)).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Middleware(log, app.ServiceUser))

	protected.Handle("/users/me", users_me_get.New(log)).Methods(http.MethodGet)
	protected.Handle("/admin/stats", admin_stats_get.New(log, app.ServiceAdmin)).Methods(http.MethodGet)

	deliveriesList := deliveries_get.New(log, app.ServiceDelivery)
	deliveryCreate := delivery_post.New(log, app.ServiceDelivery)
	for _, path := range []string{"/delivery", "/delivery/"} {
		protected.Handle(path, deliveriesList).Methods(http.MethodGet)
		protected.Handle(path, deliveryCreate).Methods(http.MethodPost)
	}

	// статические пути регистрируются раньше /delivery/{id}
	protected.Handle("/delivery/available-tasks", delivery_available_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)
	protected.Handle("/delivery/my", delivery_my_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)
	protected.Handle("/delivery/{id}", delivery_get.New(log, app.ServiceDelivery)).Methods(http.MethodGet)
	protected.Handle("/delivery/{id}/pay", delivery_pay_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)
	protected.Handle("/delivery/{id}/release", delivery_release_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)
	protected.Handle("/delivery/{id}/{action}", delivery_status_post.New(log, app.ServiceDelivery)).Methods(http.MethodPost)

	// CORS снаружи роутера: preflight OPTIONS не совпадает ни с одним маршрутом
	return cors.Middleware(cfg.CORSAllowedOrigins)(router)
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
