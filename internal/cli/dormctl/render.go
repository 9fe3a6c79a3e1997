package dormctl

import (
	"io"

	"dorm-delivery/pkg/client"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// orderCard - карточка заявки заказчика.
func orderCard(w io.Writer, d client.Delivery) {
	writef(w, "#%d %s [%s]\n", d.ID, d.Title, d.Status)
	writef(w, "  %s\n", deref(d.Description))
	writef(w, "  Pickup: %s\n", deref(d.PickupLocation))
	writef(w, "  Dropoff: %s\n", deref(d.DropoffLocation))
	writef(w, "  Payment: %s %.2f\n", d.PaymentStatus, d.Amount)
	if client.CustomerCanConfirm(d.Status) {
		writef(w, "  > Confirm Delivery: dormctl deliveries confirm %d\n", d.ID)
	}
}

// availableCard - карточка свободной задачи с кнопкой Accept.
func availableCard(w io.Writer, d client.Delivery) {
	writef(w, "Order #%d %s\n", d.ID, d.Title)
	writef(w, "  %s\n", deref(d.CustomerName))
	writef(w, "  %s -> %s\n", deref(d.PickupLocation), deref(d.DropoffLocation))
	writef(w, "  Status: %s\n", d.Status)
	writef(w, "  > Accept: dormctl tasks accept %d\n", d.ID)
}

// taskCard - карточка назначенной задачи, кнопка зависит от статуса.
func taskCard(w io.Writer, d client.Delivery) {
	writef(w, "#%d %s\n", d.ID, d.Title)
	writef(w, "  Pickup: %s\n", deref(d.PickupLocation))
	writef(w, "  Dropoff: %s\n", deref(d.DropoffLocation))
	writef(w, "  Description: %s\n", deref(d.Description))
	writef(w, "  Status: %s\n", d.Status)

	action, ok := client.ActionFor(d.Status)
	switch {
	case !ok:
	case action.Clickable():
		writef(w, "  > %s: dormctl tasks %s %d\n", action.Label, commandFor(action.Name), d.ID)
	default:
		writef(w, "  %s\n", action.Label)
	}
}

// commandFor переводит действие API в подкоманду tasks.
func commandFor(action string) string {
	if action == "mark-delivered" {
		return "deliver"
	}
	return action
}

func emptyList(w io.Writer, list []client.Delivery, message string) bool {
	if len(list) > 0 {
		return false
	}
	writeln(w, message)
	return true
}
