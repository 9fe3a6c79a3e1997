package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dorm-delivery/internal/entities"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type Notifier struct {
	channel  channel
	exchange string
}

func New(channel channel, exchange string) *Notifier {
	return &Notifier{
		channel:  channel,
		exchange: exchange,
	}
}

func (n *Notifier) Notify(ctx context.Context, notification entities.Notification) error {
	body, err := json.Marshal(fromDomain(notification))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// routing key у fanout игнорируется
	err = n.channel.PublishWithContext(ctx, n.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    notification.CreatedAt,
		Body:         body,
	})
	if err != nil {
		NotificationsPublishedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("gateway rabbitmq, publish notification for delivery %d: %w", notification.DeliveryID, err)
	}

	NotificationsPublishedTotal.WithLabelValues("ok").Inc()
	return nil
}
