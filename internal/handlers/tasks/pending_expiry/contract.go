//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pending_expiry_test
package pending_expiry

import (
	"context"
	"time"

	"dorm-delivery/pkg/logger"
)

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ExpirePendingDeliveries(ctx context.Context, olderThan time.Duration) (int64, error)
}
