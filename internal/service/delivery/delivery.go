package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/tx"
)

type Delivery struct {
	log        serviceLogger
	repository Repository
	publisher  EventPublisher
	references ReferenceFactory
	txManager  TxManager
	now        func() time.Time
}

func New(
	log serviceLogger,
	repository Repository,
	publisher EventPublisher,
	references ReferenceFactory,
	txManager TxManager,
) *Delivery {
	return &Delivery{
		log:        log.With(logger.NewField("service", "delivery")),
		repository: repository,
		publisher:  publisher,
		references: references,
		txManager:  txManager,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Delivery) CreateDelivery(ctx context.Context, actor *entities.User, create entities.DeliveryCreate) (*entities.Delivery, error) {
	if actor.Role != entities.RoleCustomer {
		return nil, ErrCustomersOnly
	}

	create.Title = strings.TrimSpace(create.Title)
	create.Description = strings.TrimSpace(create.Description)
	create.PickupLocation = strings.TrimSpace(create.PickupLocation)
	create.DropoffLocation = strings.TrimSpace(create.DropoffLocation)
	if create.ParcelType == "" {
		create.ParcelType = entities.DefaultParcelType
	}

	if !isValidTitle(create.Title) {
		return nil, ErrInvalidTitle
	}
	if !isValidAmount(create.Amount) {
		return nil, ErrInvalidAmount
	}
	if !isValidParcelType(create.ParcelType) {
		return nil, ErrInvalidParcelType
	}

	var created *entities.Delivery
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, actor.ID, create)
		if err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, created)
	return created, nil
}

func (s *Delivery) ListCustomerDeliveries(ctx context.Context, actor *entities.User) ([]entities.Delivery, error) {
	deliveries, err := s.repository.List(ctx, entities.DeliveryFilter{CustomerID: &actor.ID})
	if err != nil {
		return nil, fmt.Errorf("list customer deliveries: %w", err)
	}
	return deliveries, nil
}

func (s *Delivery) ListAvailableTasks(ctx context.Context, actor *entities.User) ([]entities.Delivery, error) {
	if actor.Role != entities.RoleDelivery {
		return nil, ErrDeliveryOnly
	}

	pending := entities.StatusPending
	deliveries, err := s.repository.List(ctx, entities.DeliveryFilter{Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("list available tasks: %w", err)
	}
	return deliveries, nil
}

func (s *Delivery) ListAssignedTasks(ctx context.Context, actor *entities.User) ([]entities.Delivery, error) {
	deliveries, err := s.repository.List(ctx, entities.DeliveryFilter{AssignedTo: &actor.ID})
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return deliveries, nil
}

// GetDelivery отдает заявку владельцу, исполнителю или администратору.
func (s *Delivery) GetDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	d, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	if actor.Role != entities.RoleAdmin && !d.IsOwnedBy(actor.ID) && !d.IsAssignedTo(actor.ID) {
		return nil, ErrNotOwner
	}
	return d, nil
}

func (s *Delivery) AcceptDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	return s.Transition(ctx, actor, id, ActionAccept)
}

func (s *Delivery) StartDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	return s.Transition(ctx, actor, id, ActionStart)
}

func (s *Delivery) MarkDelivered(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	return s.Transition(ctx, actor, id, ActionMarkDelivered)
}

func (s *Delivery) FailDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	return s.Transition(ctx, actor, id, ActionFail)
}

func (s *Delivery) ConfirmDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	return s.Transition(ctx, actor, id, ActionConfirm)
}

// Transition применяет действие к заявке под блокировкой строки.
func (s *Delivery) Transition(ctx context.Context, actor *entities.User, id int64, action Action) (*entities.Delivery, error) {
	t, ok := transitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	if t.role != "" && actor.Role != t.role {
		return nil, t.roleErr
	}

	var updated *entities.Delivery
	err := s.inTx(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock delivery: %w", err)
		}

		if t.permit != nil {
			if err := t.permit(actor, current); err != nil {
				return err
			}
		}
		if !t.allowedFrom(current.Status) {
			return fmt.Errorf("%w: %s from %s", t.statusErr, action, current.Status)
		}

		modify := entities.DeliveryModify{Status: &t.to}
		if t.assignsActor {
			modify.AssignedTo = &actor.ID
		}

		updated, err = s.repository.Update(ctx, id, modify)
		if err != nil {
			return fmt.Errorf("%s delivery: %w", action, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, updated)
	return updated, nil
}

// PayDelivery резервирует сумму заявки. Реального списания нет, только референс.
// Чужая заявка для платежных операций выглядит как несуществующая.
func (s *Delivery) PayDelivery(ctx context.Context, actor *entities.User, id int64) (*entities.PaymentReceipt, error) {
	var (
		receipt entities.PaymentReceipt
		updated *entities.Delivery
	)
	err := s.inTx(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock delivery: %w", err)
		}

		if !current.IsOwnedBy(actor.ID) {
			return ErrDeliveryNotFound
		}
		if current.Status.Terminal() {
			return fmt.Errorf("%w: pay in status %s", ErrInvalidTransition, current.Status)
		}
		if current.PaymentStatus != entities.PaymentUnpaid {
			return ErrAlreadyPaid
		}

		held := entities.PaymentHeld
		reference := s.references.NewReference()
		updated, err = s.repository.Update(ctx, id, entities.DeliveryModify{
			PaymentStatus:    &held,
			PaymentReference: &reference,
			HeldAmount:       &current.Amount,
		})
		if err != nil {
			return fmt.Errorf("hold payment: %w", err)
		}

		receipt = entities.PaymentReceipt{
			Status:           updated.PaymentStatus,
			PaymentReference: updated.PaymentReference,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, updated)
	return &receipt, nil
}

// ReleasePayment отпускает удержанные средства исполнителю после доставки.
func (s *Delivery) ReleasePayment(ctx context.Context, actor *entities.User, id int64) (*entities.Delivery, error) {
	var updated *entities.Delivery
	err := s.inTx(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock delivery: %w", err)
		}

		if !current.IsOwnedBy(actor.ID) {
			return ErrDeliveryNotFound
		}
		if current.Status != entities.StatusDelivered {
			return ErrReleaseTooEarly
		}
		if current.PaymentStatus != entities.PaymentHeld {
			return ErrNoHeldFunds
		}

		released := entities.PaymentReleased
		updated, err = s.repository.Update(ctx, id, entities.DeliveryModify{PaymentStatus: &released})
		if err != nil {
			return fmt.Errorf("release payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, updated)
	return updated, nil
}

// ExpirePendingDeliveries переводит в failed заявки, которые никто не принял за olderThan.
func (s *Delivery) ExpirePendingDeliveries(ctx context.Context, olderThan time.Duration) (int64, error) {
	var expired []entities.Delivery
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		expired, err = s.repository.ExpirePending(ctx, s.now().Add(-olderThan))
		if err != nil {
			return fmt.Errorf("expire pending: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("expire pending timed out: %w", err)
		}
		return 0, err
	}

	for i := range expired {
		s.publishCommitted(ctx, &expired[i])
	}
	return int64(len(expired)), nil
}

// inTx сводит конфликт сериализации на COMMIT к той же ошибке, что и конфликт на блокировке строки.
func (s *Delivery) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.txManager.Do(ctx, fn)
	if err != nil && !errors.Is(err, ErrConcurrentUpdate) && tx.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	}
	return err
}

// publishCommitted вызывается только после коммита: воркер расчетов читает строку
// по событию и должен увидеть уже зафиксированное состояние. Ошибка отправки
// не откатывает изменение, она логируется и считается метрикой шлюза.
// TODO: transactional outbox в deliveries_events, чтобы события переживали падение брокера.
func (s *Delivery) publishCommitted(ctx context.Context, d *entities.Delivery) {
	// запрос мог завершиться сразу после коммита, событие все равно нужно отправить
	ctx = context.WithoutCancel(ctx)

	err := s.publisher.Publish(ctx, entities.NewDeliveryStatusEvent(d, s.now()))
	if err != nil {
		s.log.With(
			logger.NewField("delivery", d.ID),
			logger.NewField("status", d.Status.String()),
			logger.NewField("error", err),
		).Error("publish delivery status event after commit")
	}
}
