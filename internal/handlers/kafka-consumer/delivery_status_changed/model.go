package delivery_status_changed

import (
	"time"

	"dorm-delivery/internal/entities"
)

// statusChangedEvent - JSON сообщение топика delivery.status.changed.
type statusChangedEvent struct {
	DeliveryID    int64     `json:"delivery_id"`
	CustomerID    int64     `json:"customer_id"`
	AssignedTo    *int64    `json:"assigned_to"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e statusChangedEvent) toDomain() entities.DeliveryStatusEvent {
	return entities.DeliveryStatusEvent{
		DeliveryID:    e.DeliveryID,
		CustomerID:    e.CustomerID,
		AssignedTo:    e.AssignedTo,
		Status:        entities.DeliveryStatus(e.Status),
		PaymentStatus: entities.PaymentStatus(e.PaymentStatus),
		OccurredAt:    e.OccurredAt,
	}
}
