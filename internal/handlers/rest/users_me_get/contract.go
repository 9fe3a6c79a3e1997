//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=users_me_get_test
package users_me_get

import (
	"dorm-delivery/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
