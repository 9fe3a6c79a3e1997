package rate_limiter_sweep

import (
	"context"
	"time"

	"dorm-delivery/pkg/logger"
)

// RateLimiterSweep удаляет bucket'ы клиентов, которые успели полностью пополниться.
// Без этого карта лимитера растет с каждым новым IP.
type RateLimiterSweep struct {
	log      taskLogger
	limiter  Sweeper
	interval time.Duration
}

func NewRateLimiterSweep(log taskLogger, limiter Sweeper, interval time.Duration) *RateLimiterSweep {
	return &RateLimiterSweep{
		log:      log,
		limiter:  limiter,
		interval: interval,
	}
}

func (r *RateLimiterSweep) TTL() time.Duration {
	return r.interval
}

func (r *RateLimiterSweep) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if removed := r.limiter.Sweep(); removed > 0 {
		r.log.With(
			logger.NewField("removed_buckets", removed),
		).Info("rate limiter sweep")
	}
	return nil
}

func (r *RateLimiterSweep) Info() string {
	return "rate limiter sweep"
}
