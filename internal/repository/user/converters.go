package user

import "dorm-delivery/internal/entities"

func ToDomain(u *UserDB) *entities.User {
	if u == nil {
		return nil
	}
	return &entities.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         entities.Role(u.Role),
		Rating:       u.Rating,
		CreatedAt:    u.CreatedAt,
	}
}
