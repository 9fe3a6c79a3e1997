package app

import (
	"context"
	"fmt"

	"dorm-delivery/internal/gateway/kafka/delivery_events"
	"dorm-delivery/internal/gateway/rabbitmq/notification"
	"dorm-delivery/internal/handlers/rest/admin_stats_get"
	"dorm-delivery/internal/handlers/rest/auth_login_post"
	"dorm-delivery/internal/handlers/rest/auth_register_post"
	"dorm-delivery/internal/handlers/rest/deliveries_get"
	"dorm-delivery/internal/handlers/rest/delivery_available_get"
	"dorm-delivery/internal/handlers/rest/delivery_get"
	"dorm-delivery/internal/handlers/rest/delivery_my_get"
	"dorm-delivery/internal/handlers/rest/delivery_pay_post"
	"dorm-delivery/internal/handlers/rest/delivery_post"
	"dorm-delivery/internal/handlers/rest/delivery_release_post"
	"dorm-delivery/internal/handlers/rest/delivery_status_post"
	"dorm-delivery/internal/handlers/tasks/pending_expiry"
	"dorm-delivery/internal/handlers/tasks/rate_limiter_sweep"
	"dorm-delivery/internal/pkg/config"
	"dorm-delivery/internal/pkg/middlewares/auth"

	deliveryRepo "dorm-delivery/internal/repository/delivery"
	userRepo "dorm-delivery/internal/repository/user"
	adminService "dorm-delivery/internal/service/admin"
	deliveryService "dorm-delivery/internal/service/delivery"
	settlementService "dorm-delivery/internal/service/settlement"
	userService "dorm-delivery/internal/service/user"

	"dorm-delivery/pkg/background"
	"dorm-delivery/pkg/logger"
	"dorm-delivery/pkg/password"
	"dorm-delivery/pkg/querier"
	"dorm-delivery/pkg/token"
	"dorm-delivery/pkg/token_bucket"
	"dorm-delivery/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Application struct {
	ServiceUser       ServiceUser
	ServiceDelivery   ServiceDelivery
	ServiceAdmin      ServiceAdmin
	RateLimiter       *token_bucket.KeyedLimiter
	BackgroundWorkers *background.Worker
}

type ServiceUser interface {
	auth_register_post.Service
	auth_login_post.Service
	auth.Authenticator
}

type ServiceDelivery interface {
	deliveries_get.Service
	delivery_post.Service
	delivery_available_get.Service
	delivery_my_get.Service
	delivery_get.Service
	delivery_status_post.Service
	delivery_pay_post.Service
	delivery_release_post.Service
}

type ServiceAdmin interface {
	admin_stats_get.Service
}

type KafkaWorkerApp struct {
	SettlementService *settlementService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func providePasswordHasher(cfg *config.Config) *password.Hasher {
	return password.NewHasher(cfg.Auth.BcryptCost)
}

func provideTokenManager(cfg *config.Config) (*token.Manager, error) {
	manager, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	return manager, nil
}

func provideEventPublisher(producer sarama.SyncProducer, cfg *config.Config) *delivery_events.Publisher {
	return delivery_events.New(producer, cfg.Kafka.Topic)
}

func provideNotifier(channel *amqp.Channel, cfg *config.Config) *notification.Notifier {
	return notification.New(channel, cfg.RabbitMQ.Exchange)
}

func provideServiceUser(
	repository userService.Repository,
	hasher userService.PasswordHasher,
	tokens userService.TokenManager,
) *userService.User {
	return userService.New(repository, hasher, tokens)
}

func provideServiceDelivery(
	log logger.Logger,
	repository deliveryService.Repository,
	publisher deliveryService.EventPublisher,
	references deliveryService.ReferenceFactory,
	txManager deliveryService.TxManager,
) *deliveryService.Delivery {
	return deliveryService.New(
		log,
		repository,
		publisher,
		references,
		txManager,
	)
}

func provideServiceAdmin(
	repository adminService.StatsRepository,
	txManager adminService.TxManager,
) *adminService.Service {
	return adminService.New(repository, txManager)
}

// provideSettlementService создает сервис расчетов для обработки событий Kafka
func provideSettlementService(
	repository settlementService.Repository,
	notifier settlementService.Notifier,
	rules settlementService.RuleFactory,
	txManager settlementService.TxManager,
) *settlementService.Service {
	return settlementService.New(repository, notifier, rules, txManager)
}

// provideRateLimiter: QPS - емкость bucket'а клиента, Burst - пополнение в секунду.
func provideRateLimiter(cfg *config.Config) *token_bucket.KeyedLimiter {
	return token_bucket.NewKeyedLimiter(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))
}

func providePendingExpiryTask(
	log logger.Logger,
	deliveryService pending_expiry.Service,
	cfg *config.Config,
) *pending_expiry.PendingExpiry {
	return pending_expiry.NewPendingExpiry(log, deliveryService, cfg.Tasks.PendingExpiryInterval, cfg.Tasks.PendingExpiryTTL)
}

func provideRateLimiterSweepTask(
	log logger.Logger,
	limiter *token_bucket.KeyedLimiter,
	cfg *config.Config,
) *rate_limiter_sweep.RateLimiterSweep {
	return rate_limiter_sweep.NewRateLimiterSweep(log, limiter, cfg.Tasks.RateLimiterSweepInterval)
}

func provideTaskList(
	pendingExpiryTask *pending_expiry.PendingExpiry,
	rateLimiterSweepTask *rate_limiter_sweep.RateLimiterSweep,
) []background.Task {
	return []background.Task{
		pendingExpiryTask,
		rateLimiterSweepTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks...)
}
