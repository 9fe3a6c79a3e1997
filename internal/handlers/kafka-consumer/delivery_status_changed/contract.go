//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_status_changed_test
package delivery_status_changed

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
	SettleDeliveryPayment(ctx context.Context, event entities.DeliveryStatusEvent) (*entities.Delivery, error)
}
