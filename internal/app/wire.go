//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dorm-delivery/internal/gateway/kafka/delivery_events"
	"dorm-delivery/internal/gateway/rabbitmq/notification"
	"dorm-delivery/internal/handlers/tasks/pending_expiry"
	"dorm-delivery/internal/pkg/config"
	"dorm-delivery/internal/pkg/factory/payment_reference"
	"dorm-delivery/internal/pkg/factory/settlement_rule"

	deliveryRepo "dorm-delivery/internal/repository/delivery"
	userRepo "dorm-delivery/internal/repository/user"
	adminService "dorm-delivery/internal/service/admin"
	deliveryService "dorm-delivery/internal/service/delivery"
	settlementService "dorm-delivery/internal/service/settlement"
	userService "dorm-delivery/internal/service/user"

	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/password"
	"dorm-delivery/pkg/token"
	"dorm-delivery/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideUserRepository,
		provideDeliveryRepository,

		providePasswordHasher,
		provideTokenManager,
		provideEventPublisher,
		payment_reference.New,

		provideServiceUser,
		provideServiceDelivery,
		provideServiceAdmin,

		provideRateLimiter,

		providePendingExpiryTask,
		provideRateLimiterSweepTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceUser), new(*userService.User)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceAdmin), new(*adminService.Service)),

		wire.Bind(new(userService.Repository), new(*userRepo.Repository)),
		wire.Bind(new(userService.PasswordHasher), new(*password.Hasher)),
		wire.Bind(new(userService.TokenManager), new(*token.Manager)),

		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.EventPublisher), new(*delivery_events.Publisher)),
		wire.Bind(new(deliveryService.ReferenceFactory), new(*payment_reference.ReferenceFactory)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),

		wire.Bind(new(adminService.StatsRepository), new(*deliveryRepo.Repository)),
		wire.Bind(new(adminService.TxManager), new(*tx.Manager)),

		wire.Bind(new(pending_expiry.Service), new(*deliveryService.Delivery)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	channel *amqp.Channel,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideDeliveryRepository,
		provideNotifier,
		settlement_rule.NewRuleFactory,

		provideSettlementService,

		wire.Bind(new(settlementService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(settlementService.Notifier), new(*notification.Notifier)),
		wire.Bind(new(settlementService.RuleFactory), new(*settlement_rule.RuleFactory)),
		wire.Bind(new(settlementService.TxManager), new(*tx.Manager)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
