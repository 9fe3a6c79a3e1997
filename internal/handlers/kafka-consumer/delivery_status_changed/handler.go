package delivery_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/service/delivery"
	"dorm-delivery/internal/service/settlement"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/retrier"
	"dorm-delivery/pkg/retrier/backoff_adapter"
	"dorm-delivery/pkg/tx"
	"github.com/IBM/sarama"
)

const (
	retryInitialInterval = 50 * time.Millisecond
	retryMaxInterval     = time.Second
	retryRandomization   = 0.5
	retryMultiplier      = 2.0
)

type Handler struct {
	settlementService        Service
	log                      handlerLogger
	retrier                  retrier.Retrier
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, settlementService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		settlementService: settlementService,
		log:               handlerLog,
		// повторы ограничены только messageProcessingTimeout
		retrier: backoff_adapter.New(retrier.Config{
			InitialInterval: retryInitialInterval,
			MaxInterval:     retryMaxInterval,
			Randomization:   retryRandomization,
			Multiplier:      retryMultiplier,
			ShouldRetry:     isTransient,
			Notify: func(err error, next time.Duration) {
				handlerLog.With(
					logger.NewField("error", err),
					logger.NewField("next_attempt_in", next.String()),
				).Warn("delivery.status.changed transient error, retrying")
			},
		}),
		messageProcessingTimeout: timeout,
	}
}

// isTransient - ошибки, после которых то же событие можно обработать заново:
// конфликт сериализации с транзакцией API или недоступный брокер уведомлений.
func isTransient(err error) bool {
	return errors.Is(err, delivery.ErrConcurrentUpdate) ||
		tx.IsSerializationFailure(err) ||
		errors.Is(err, settlement.ErrNotifyFailed)
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("delivery.status.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("delivery.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение.
// true - прервать ConsumeClaim: контекст отменен, сообщение не помечено и придет снова.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("delivery.status.changed handler received bad message")
		SettlementsTotal.WithLabelValues(resultSkipped).Inc()
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("delivery", event.DeliveryID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("delivery.status.changed processing")

	var settled *entities.Delivery
	err = h.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		var err error
		settled, err = h.settlementService.SettleDeliveryPayment(ctx, event.toDomain())
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || isTransient(err):
			// сообщение не помечаем: после перезапуска claim оно придет снова
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.status.changed handler gave up for now, message will be reprocessed")
			SettlementsTotal.WithLabelValues(resultRetry).Inc()
			return true

		case errors.Is(err, settlement.ErrUndefinedStatus),
			errors.Is(err, settlement.ErrInvalidEvent):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.status.changed handler skipped invalid event")
			SettlementsTotal.WithLabelValues(resultSkipped).Inc()

		case errors.Is(err, delivery.ErrDeliveryNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.status.changed handler delivery not found")
			SettlementsTotal.WithLabelValues(resultSkipped).Inc()

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("delivery.status.changed handler failed to settle delivery")
			SettlementsTotal.WithLabelValues(resultFailed).Inc()
		}
		sess.MarkMessage(message, "")
		return false
	}

	h.log.With(
		logger.NewField("delivery", settled.ID),
		logger.NewField("event_status", event.Status),
		logger.NewField("current_status", settled.Status.String()),
		logger.NewField("payment_status", settled.PaymentStatus.String()),
		logger.NewField("offset", message.Offset),
	).Info("delivery.status.changed: processed")
	SettlementsTotal.WithLabelValues(resultSettled).Inc()

	sess.MarkMessage(message, "")
	return false
}
