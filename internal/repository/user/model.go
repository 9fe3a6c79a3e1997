package user

import "time"

type UserDB struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Rating       float64
	CreatedAt    time.Time
}
