package pending_expiry

import (
	"context"
	"time"

	"dorm-delivery/pkg/logger"
)

// PendingExpiry переводит в failed заявки, которые дольше ttl никто не принял.
type PendingExpiry struct {
	log      taskLogger
	service  Service
	interval time.Duration
	ttl      time.Duration
}

func NewPendingExpiry(log taskLogger, service Service, interval, ttl time.Duration) *PendingExpiry {
	return &PendingExpiry{
		log:      log,
		service:  service,
		interval: interval,
		ttl:      ttl,
	}
}

func (p *PendingExpiry) TTL() time.Duration {
	return p.interval
}

func (p *PendingExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	expired, err := p.service.ExpirePendingDeliveries(ctxWithTimeout, p.ttl)

	if expired > 0 {
		p.log.With(
			logger.NewField("expired_deliveries", expired),
		).Info("pending expiry")
	}

	return err
}

func (p *PendingExpiry) Info() string {
	return "pending expiry"
}
