package delivery_events

import (
	"time"

	"dorm-delivery/internal/entities"
)

type eventMessage struct {
	DeliveryID    int64     `json:"delivery_id"`
	CustomerID    int64     `json:"customer_id"`
	AssignedTo    *int64    `json:"assigned_to"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func fromDomain(e entities.DeliveryStatusEvent) eventMessage {
	return eventMessage{
		DeliveryID:    e.DeliveryID,
		CustomerID:    e.CustomerID,
		AssignedTo:    e.AssignedTo,
		Status:        e.Status.String(),
		PaymentStatus: e.PaymentStatus.String(),
		OccurredAt:    e.OccurredAt,
	}
}
