package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"dorm-delivery/internal/pkg/config"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/retrier"
	"dorm-delivery/pkg/retrier/backoff_adapter"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxConns          = 10
	minConns          = 2
	maxConnLifetime   = time.Hour
	healthCheckPeriod = 30 * time.Second
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
	)

	if err := ping(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

// DSN собирает строку подключения, экранируя логин и пароль.
func DSN(cfg *config.Database) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func ping(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	retryConfig := retrier.Connect()
	retryConfig.Notify = func(err error, next time.Duration) {
		log.Warn("database is not ready, retrying",
			logger.NewField("error", err),
			logger.NewField("next_attempt_in", next.String()),
		)
	}

	err := backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if err != nil {
		log.Error("database connection failed after retries", logger.NewField("error", err))
		return fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connection established")
	return nil
}
