//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=auth_login_post_test
package auth_login_post

import (
	"context"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Login(ctx context.Context, email string, password string) (*entities.AccessToken, error)
}
