package kafka

import (
	"context"
	"fmt"

	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/retrier"
	"dorm-delivery/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
)

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	var attempt uint64
	err := backoff_adapter.New(retrier.Connect()).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting Kafka connection")

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}

		defer func() {
			if err := client.Close(); err != nil {
				log.With(logger.NewField("error", err)).Error("failed to close Kafka connection")
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Kafka connection failed after retries")
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.With(logger.NewField("attempts", attempt)).Info("Kafka connection established")
	return nil
}
