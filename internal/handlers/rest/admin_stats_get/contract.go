//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_stats_get_test
package admin_stats_get

import (
	"context"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetStats(ctx context.Context, actor *entities.User) (*entities.Stats, error)
}
