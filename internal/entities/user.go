package entities

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDelivery, RoleAdmin:
		return true
	}
	return false
}

const DefaultRating = 5.0

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Rating       float64
	CreatedAt    time.Time
}

type UserRegistration struct {
	Username string
	Email    string
	Password string
	Role     Role
}

type AccessToken struct {
	Token     string
	TokenType string
}
