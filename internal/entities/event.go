package entities

import "time"

type DeliveryStatusEvent struct {
	DeliveryID    int64
	CustomerID    int64
	AssignedTo    *int64
	Status        DeliveryStatus
	PaymentStatus PaymentStatus
	OccurredAt    time.Time
}

func NewDeliveryStatusEvent(d *Delivery, at time.Time) DeliveryStatusEvent {
	return DeliveryStatusEvent{
		DeliveryID:    d.ID,
		CustomerID:    d.CustomerID,
		AssignedTo:    d.AssignedTo,
		Status:        d.Status,
		PaymentStatus: d.PaymentStatus,
		OccurredAt:    at,
	}
}

type Notification struct {
	DeliveryID    int64
	CustomerID    int64
	Status        DeliveryStatus
	PaymentStatus PaymentStatus
	Message       string
	CreatedAt     time.Time
}
