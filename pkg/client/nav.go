package client

import (
	"dorm-delivery/pkg/token"
)

// RoleFromToken читает claim role без проверки подписи.
// Битый токен или неизвестная роль означают "не залогинен".
func RoleFromToken(raw string) (Role, bool) {
	if raw == "" {
		return "", false
	}
	role := Role(token.RoleFromUnverified(raw))
	if !role.Valid() {
		return "", false
	}
	return role, true
}

type NavLink struct {
	Label   string
	Command string
}

// NavLinks повторяет навигацию веб версии: гостю регистрация и вход,
// ролям свои разделы, залогиненному еще и выход.
func NavLinks(role Role, loggedIn bool) []NavLink {
	links := make([]NavLink, 0, 4)

	if !loggedIn {
		links = append(links,
			NavLink{Label: "Register", Command: "register"},
			NavLink{Label: "Login", Command: "login"},
		)
	}

	switch role {
	case RoleCustomer:
		links = append(links,
			NavLink{Label: "My Requests", Command: "deliveries list"},
			NavLink{Label: "New Delivery", Command: "deliveries create"},
		)
	case RoleDelivery:
		links = append(links,
			NavLink{Label: "Available Tasks", Command: "tasks available"},
			NavLink{Label: "My Tasks", Command: "tasks my"},
		)
	case RoleAdmin:
		links = append(links, NavLink{Label: "Admin Dashboard", Command: "admin stats"})
	}

	if loggedIn {
		links = append(links, NavLink{Label: "Logout", Command: "logout"})
	}
	return links
}

// Guard пускает на страницу только роль required.
func Guard(role, required Role) error {
	if role != required {
		return ErrRedirect
	}
	return nil
}

// Action - кнопка на карточке задачи исполнителя.
// Пустой Name означает подпись без действия.
type Action struct {
	Name  string
	Label string
}

func (a Action) Clickable() bool {
	return a.Name != ""
}

func ActionFor(status string) (Action, bool) {
	switch status {
	case StatusAccepted:
		return Action{Name: "start", Label: "Start Delivery"}, true
	case StatusInProgress:
		return Action{Name: "mark-delivered", Label: "Mark Delivered"}, true
	case StatusDelivered:
		return Action{Label: "Waiting for customer confirmation..."}, true
	default:
		return Action{}, false
	}
}

func CustomerCanConfirm(status string) bool {
	return status == StatusDelivered
}
