//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_test
package user

import (
	"context"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/token"
)

type Repository interface {
	Create(ctx context.Context, u entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash string, plain string) error
}

type TokenManager interface {
	Issue(userID int64, role string) (string, error)
	Parse(raw string) (token.Subject, error)
}
