package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-delivery/internal/pkg/config"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/retrier"
	"dorm-delivery/pkg/retrier/backoff_adapter"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = amqp.ExchangeFanout

type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect подключается с экспоненциальным backoff и объявляет fanout exchange уведомлений.
func Connect(ctx context.Context, log logger.Logger, cfg *config.RabbitMQ) (*Connection, error) {
	rabbitLog := log.With(logger.NewField("exchange", cfg.Exchange))

	retryConfig := retrier.Connect()
	retryConfig.Notify = retrier.NotifyFunc(func(err error, next time.Duration) {
		rabbitLog.With(logger.NewField("error", err)).Warn("RabbitMQ is not ready, retrying in " + next.String())
	})

	var c *Connection
	err := backoff_adapter.New(retryConfig).ExecuteWithContext(ctx, func(context.Context) error {
		var err error
		c, err = dial(cfg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	rabbitLog.Info("RabbitMQ connection established")
	return c, nil
}

func dial(cfg *config.RabbitMQ) (*Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open channel: %w", err), conn.Close())
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		exchangeKind,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err), conn.Close())
	}

	return &Connection{conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

func (c *Connection) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}
