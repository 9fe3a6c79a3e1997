package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dorm-delivery/internal/entities"
	"dorm-delivery/pkg/password"
)

const tokenType = "bearer"

type User struct {
	repository Repository
	hasher     PasswordHasher
	tokens     TokenManager
}

func New(repository Repository, hasher PasswordHasher, tokens TokenManager) *User {
	return &User{
		repository: repository,
		hasher:     hasher,
		tokens:     tokens,
	}
}

func (s *User) Register(ctx context.Context, reg entities.UserRegistration) (*entities.User, error) {
	email := strings.TrimSpace(reg.Email)

	if !isValidUsername(reg.Username) {
		return nil, ErrInvalidUsername
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isValidPassword(reg.Password) {
		return nil, fmt.Errorf("%w: must be 1 to %d bytes", ErrInvalidPassword, password.MaxLength)
	}
	if !reg.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repository.Create(ctx, entities.User{
		Name:         strings.TrimSpace(reg.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         reg.Role,
		Rating:       entities.DefaultRating,
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	return created, nil
}

func (s *User) Login(ctx context.Context, email, plain string) (*entities.AccessToken, error) {
	u, err := s.repository.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	signed, err := s.tokens.Issue(u.ID, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &entities.AccessToken{
		Token:     signed,
		TokenType: tokenType,
	}, nil
}

// Authenticate проверяет bearer токен и загружает пользователя.
// Роль берется из базы, а не из claims.
func (s *User) Authenticate(ctx context.Context, bearer string) (*entities.User, error) {
	subject, err := s.tokens.Parse(bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	u, err := s.repository.GetByID(ctx, subject.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return u, nil
}

func (s *User) GetUser(ctx context.Context, id int64) (*entities.User, error) {
	u, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
