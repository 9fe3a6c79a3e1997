package user

import (
	"net/mail"
	"strings"

	"dorm-delivery/pkg/password"
)

func isValidUsername(name string) bool {
	return strings.TrimSpace(name) != ""
}

// isValidEmail принимает только голый адрес, без display name.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

func isValidPassword(plain string) bool {
	return password.Validate(plain) == nil
}
