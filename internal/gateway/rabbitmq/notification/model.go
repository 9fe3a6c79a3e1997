package notification

import (
	"time"

	"dorm-delivery/internal/entities"
)

type notificationMessage struct {
	DeliveryID    int64     `json:"delivery_id"`
	CustomerID    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

func fromDomain(n entities.Notification) notificationMessage {
	return notificationMessage{
		DeliveryID:    n.DeliveryID,
		CustomerID:    n.CustomerID,
		Status:        n.Status.String(),
		PaymentStatus: n.PaymentStatus.String(),
		Message:       n.Message,
		CreatedAt:     n.CreatedAt,
	}
}
