//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=settlement_test
package settlement

import (
	"context"

	"dorm-delivery/internal/entities"
)

type Repository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Delivery, error)
	Update(ctx context.Context, id int64, modify entities.DeliveryModify) (*entities.Delivery, error)
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Outcome - решение правила: новый статус платежа (nil - не менять) и текст уведомления.
type Outcome struct {
	PaymentStatus *entities.PaymentStatus
	Message       string
}

type RuleFn func(d *entities.Delivery) Outcome

type RuleFactory interface {
	GetRule(status entities.DeliveryStatus) (RuleFn, error)
}
