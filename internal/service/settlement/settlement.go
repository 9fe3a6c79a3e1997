package settlement

import (
	"context"
	"fmt"
	"time"

	"dorm-delivery/internal/entities"
)

type Service struct {
	repository Repository
	notifier   Notifier
	rules      RuleFactory
	txManager  TxManager
	now        func() time.Time
}

func New(repository Repository, notifier Notifier, rules RuleFactory, txManager TxManager) *Service {
	return &Service{
		repository: repository,
		notifier:   notifier,
		rules:      rules,
		txManager:  txManager,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SettleDeliveryPayment сводит платеж заявки к ее текущему статусу и уведомляет заказчика.
// Событие только сообщает, какую заявку смотреть: правило выбирается по строке в БД,
// поэтому повторная или устаревшая доставка события ничего не ломает.
// Уведомление уходит после коммита; при ErrNotifyFailed событие можно обработать заново.
func (s *Service) SettleDeliveryPayment(ctx context.Context, event entities.DeliveryStatusEvent) (*entities.Delivery, error) {
	if event.DeliveryID <= 0 {
		return nil, ErrInvalidEvent
	}
	if !event.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedStatus, event.Status)
	}

	var (
		settled *entities.Delivery
		message string
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, event.DeliveryID)
		if err != nil {
			return fmt.Errorf("lock delivery %d: %w", event.DeliveryID, err)
		}

		rule, err := s.rules.GetRule(current.Status)
		if err != nil {
			return err
		}
		outcome := rule(current)
		message = outcome.Message

		settled = current
		if outcome.PaymentStatus != nil && *outcome.PaymentStatus != current.PaymentStatus {
			settled, err = s.repository.Update(ctx, current.ID, entities.DeliveryModify{
				PaymentStatus: outcome.PaymentStatus,
			})
			if err != nil {
				return fmt.Errorf("settle payment for delivery %d: %w", current.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, entities.Notification{
		DeliveryID:    settled.ID,
		CustomerID:    settled.CustomerID,
		Status:        settled.Status,
		PaymentStatus: settled.PaymentStatus,
		Message:       message,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return settled, fmt.Errorf("%w: customer %d: %w", ErrNotifyFailed, settled.CustomerID, err)
	}

	return settled, nil
}
