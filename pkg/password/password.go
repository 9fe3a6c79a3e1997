package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength - предел bcrypt, байты сверх него молча отбрасываются алгоритмом.
const MaxLength = 72

var (
	ErrEmpty    = errors.New("password is empty")
	ErrTooLong  = errors.New("password exceeds 72 bytes")
	ErrMismatch = errors.New("password mismatch")
)

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func Validate(plain string) error {
	switch {
	case len(plain) == 0:
		return ErrEmpty
	case len(plain) > MaxLength:
		return ErrTooLong
	}
	return nil
}

func (h *Hasher) Hash(plain string) (string, error) {
	if err := Validate(plain); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	if err != nil {
		return fmt.Errorf("bcrypt: %w", err)
	}
	return nil
}
