package delivery_events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dorm-delivery/internal/entities"
	retrierconfig "dorm-delivery/pkg/retrier"
	"dorm-delivery/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   randomization,
			Multiplier:      multiplier,
			ShouldRetry:     isRetryable,
		}),
	}
}

// Publish отправляет событие с ключом id заявки: все события одной заявки
// попадают в одну партицию и читаются воркером по порядку.
func (p *Publisher) Publish(ctx context.Context, event entities.DeliveryStatusEvent) error {
	payload, err := json.Marshal(fromDomain(event))
	if err != nil {
		return fmt.Errorf("marshal delivery event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.FormatInt(event.DeliveryID, 10)),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}

	start := time.Now()
	err = p.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	PublishDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		PublishedEventsTotal.WithLabelValues(event.Status.String(), "error").Inc()
		return fmt.Errorf("gateway kafka, send delivery %d event: %w", event.DeliveryID, err)
	}

	PublishedEventsTotal.WithLabelValues(event.Status.String(), "ok").Inc()
	return nil
}

func isRetryable(err error) bool {
	var kErr sarama.KError
	if errors.As(err, &kErr) {
		switch kErr {
		case sarama.ErrNotLeaderForPartition,
			sarama.ErrLeaderNotAvailable,
			sarama.ErrRequestTimedOut,
			sarama.ErrNotEnoughReplicas,
			sarama.ErrNotEnoughReplicasAfterAppend:
			return true
		}
		return false
	}
	return errors.Is(err, sarama.ErrOutOfBrokers)
}
