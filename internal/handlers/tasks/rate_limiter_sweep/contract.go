//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rate_limiter_sweep_test
package rate_limiter_sweep

import "dorm-delivery/pkg/logger"

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Sweeper interface {
	Sweep() int
}
