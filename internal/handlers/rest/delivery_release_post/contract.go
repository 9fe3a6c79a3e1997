//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_release_post_test
package delivery_release_post

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
	ReleasePayment(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error)
}
