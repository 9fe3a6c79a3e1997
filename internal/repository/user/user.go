package user

import (
	"context"
	"errors"
	"fmt"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/repository"
	"dorm-delivery/internal/service/user"
	"github.com/jackc/pgx/v5"
)

const columns = `id, name, email, password_hash, role, rating, created_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, u entities.User) (*entities.User, error) {
	query := `INSERT INTO users (name, email, password_hash, role, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + columns

	created, err := r.scanOne(r.querier.QueryRow(
		ctx,
		query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role.String(),
		u.Rating,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("unexpected user repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE id = $1`

	u, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected user repository getbyid error: %w", err)
	}
	return u, nil
}

// GetByEmail ищет без учета регистра, так же работает уникальный индекс.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + columns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	u, err := r.scanOne(r.querier.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected user repository getbyemail error: %w", err)
	}
	return u, nil
}

func (r *Repository) scanOne(row pgx.Row) (*entities.User, error) {
	var model UserDB
	err := row.Scan(
		&model.ID,
		&model.Name,
		&model.Email,
		&model.PasswordHash,
		&model.Role,
		&model.Rating,
		&model.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ToDomain(&model), nil
}
