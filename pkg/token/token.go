package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("empty signing secret")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Subject - полезная нагрузка токена после проверки.
type Subject struct {
	UserID int64
	Role   string
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock подменяет источник времени. Используется в тестах.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Issue(userID int64, role string) (string, error) {
	issuedAt := m.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) Parse(raw string) (Subject, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Subject{}, ErrInvalidToken
	}

	// jwt/v4 сверяет exp с time.Now, поэтому проверяем еще раз по своим часам
	if claims.ExpiresAt == nil || !m.now().Before(claims.ExpiresAt.Time) {
		return Subject{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: bad subject: %w", ErrInvalidToken, err)
	}

	return Subject{UserID: userID, Role: claims.Role}, nil
}

// RoleFromUnverified читает role из payload без проверки подписи.
// Возвращает пустую строку, если токен не разбирается.
func RoleFromUnverified(raw string) string {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return ""
	}
	return claims.Role
}
