package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTTTL                = 60 * time.Minute
	defaultPendingExpiryTTL      = 24 * time.Hour
	defaultRateLimiterSweep      = time.Minute
	defaultRabbitMQExchange      = "notifications_fanout"
	defaultCORSAllowedOrigins    = "*"
	defaultBcryptCost            = 12
	defaultStatusChangedTimeout  = 10 * time.Second
	defaultPendingExpiryInterval = 5 * time.Minute
)

type (
	Tasks struct {
		PendingExpiryInterval    time.Duration
		PendingExpiryTTL         time.Duration
		RateLimiterSweepInterval time.Duration
	}

	HTTPServer struct {
		Port               string
		GRPCPort           string
		RequestTimeout     time.Duration // middleware timeout
		RateLimiterQPS     int           // capacity bucket'а на клиента
		RateLimiterBurst   int           // скорость пополнения, токенов в секунду
		PprofEnabled       bool
		PprofPort          string
		CORSAllowedOrigins []string
	}

	Auth struct {
		JWTSecret  string
		JWTTTL     time.Duration
		BcryptCost int
	}

	Database struct {
		Host              string
		Port              string
		User              string
		Password          string
		DBName            string
		SSLMode           string
		MigrationsEnabled bool
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         []string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DeliveryStatusChanged DeliveryStatusChanged
	}

	DeliveryStatusChanged struct {
		ProcessTimeout time.Duration
	}

	RabbitMQ struct {
		URL      string
		Exchange string
	}

	Config struct {
		LogLevel string
		Tasks    Tasks
		Server   HTTPServer
		Auth     Auth
		Database Database
		Kafka    Kafka
		RabbitMQ RabbitMQ
	}
)

// Load читает конфигурацию HTTP сервиса (cmd/service).
func Load() (*Config, error) {
	return load(validateService)
}

// LoadWorker читает конфигурацию kafka воркера. HTTP и auth секции ему не нужны.
func LoadWorker() (*Config, error) {
	return load(validateWorker)
}

func load(validate func(*Config) error) (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	pendingExpiryInterval, err := osGetEnvDuration("BACKGROUND_PENDING_EXPIRY_INTERVAL", defaultPendingExpiryInterval)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pendingExpiryTTL, err := osGetEnvDuration("BACKGROUND_PENDING_EXPIRY_TTL", defaultPendingExpiryTTL)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterSweep, err := osGetEnvDuration("BACKGROUND_RATE_LIMITER_SWEEP_INTERVAL", defaultRateLimiterSweep)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	statusChangedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DELIVERY_STATUS_CHANGED_PROCESS_TIMEOUT", defaultStatusChangedTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST", 0)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	jwtTTL, err := osGetEnvDuration("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	bcryptCost, err := osGetInt("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrationsEnabled, err := osGetBool("MIGRATIONS_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		LogLevel: os.Getenv("LOG_LEVEL"),
		Tasks: Tasks{
			PendingExpiryInterval:    pendingExpiryInterval,
			PendingExpiryTTL:         pendingExpiryTTL,
			RateLimiterSweepInterval: rateLimiterSweep,
		},
		Server: HTTPServer{
			Port:               os.Getenv("PORT"),
			GRPCPort:           os.Getenv("GRPC_PORT"),
			RequestTimeout:     requestTimeout,
			RateLimiterQPS:     rateLimiterQPS,
			RateLimiterBurst:   rateLimiterBurst,
			PprofEnabled:       pprofEnabled,
			PprofPort:          os.Getenv("PPROF_PORT"),
			CORSAllowedOrigins: splitList(osGetString("CORS_ALLOWED_ORIGINS", defaultCORSAllowedOrigins)),
		},
		Auth: Auth{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			JWTTTL:     jwtTTL,
			BcryptCost: bcryptCost,
		},
		Database: Database{
			Host:              os.Getenv("POSTGRES_HOST"),
			Port:              os.Getenv("POSTGRES_PORT"),
			User:              os.Getenv("POSTGRES_USER"),
			Password:          os.Getenv("POSTGRES_PASSWORD"),
			DBName:            os.Getenv("POSTGRES_DB"),
			SSLMode:           os.Getenv("POSTGRES_SSLMODE"),
			MigrationsEnabled: migrationsEnabled,
		},
		Kafka: Kafka{
			Brokers:         splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DeliveryStatusChanged: DeliveryStatusChanged{
					ProcessTimeout: statusChangedTimeout,
				},
			},
		},
		RabbitMQ: RabbitMQ{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: osGetString("RABBITMQ_EXCHANGE", defaultRabbitMQExchange),
		},
	}, nil
}

func validateService(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.GRPCPort == "" {
		return errors.New("GRPC_PORT is required")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if cfg.Tasks.PendingExpiryInterval <= 0 {
		return errors.New("BACKGROUND_PENDING_EXPIRY_INTERVAL must be positive")
	}
	if cfg.Tasks.PendingExpiryTTL <= 0 {
		return errors.New("BACKGROUND_PENDING_EXPIRY_TTL must be positive")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}
	return validateKafkaProducer(&cfg.Kafka)
}

func validateWorker(cfg *Config) error {
	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}
	if err := validateKafkaProducer(&cfg.Kafka); err != nil {
		return err
	}

	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if cfg.Kafka.Handlers.DeliveryStatusChanged.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_DELIVERY_STATUS_CHANGED_PROCESS_TIMEOUT must be positive")
	}

	if cfg.RabbitMQ.URL == "" {
		return errors.New("RABBITMQ_URL is required")
	}
	if cfg.RabbitMQ.Exchange == "" {
		return errors.New("RABBITMQ_EXCHANGE is required")
	}
	return nil
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateKafkaProducer(k *Kafka) error {
	if len(k.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if k.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if k.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}
	return nil
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}

	parts := strings.Split(val, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func osGetString(s, def string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return def
}

func osGetInt(s string, def int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string, def bool) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
