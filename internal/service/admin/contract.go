//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=admin_test
package admin

import (
	"context"

	"dorm-delivery/internal/entities"
)

type StatsRepository interface {
	Stats(ctx context.Context) (*entities.Stats, error)
}

type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
