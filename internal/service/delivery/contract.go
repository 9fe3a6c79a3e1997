//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Repository interface {
	Create(ctx context.Context, customerID int64, create entities.DeliveryCreate) (*entities.Delivery, error)
	GetByID(ctx context.Context, id int64) (*entities.Delivery, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Delivery, error)
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error)
	Update(ctx context.Context, id int64, modify entities.DeliveryModify) (*entities.Delivery, error)
	ExpirePending(ctx context.Context, createdBefore time.Time) ([]entities.Delivery, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.DeliveryStatusEvent) error
}

type ReferenceFactory interface {
	NewReference() string
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
