// Package presenter собирает JSON модели ответов из доменных сущностей.
package presenter

import (
	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/generated/dto"
)

func User(u *entities.User) dto.User {
	return dto.User{
		Id:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role.String(),
		Rating: u.Rating,
	}
}

// Delivery отдает тип посылки и в parcel_type, и в старом поле task_type.
func Delivery(d *entities.Delivery) dto.Delivery {
	res := dto.Delivery{
		Id:               d.ID,
		Title:            d.Title,
		Description:      optional(d.Description),
		ParcelType:       d.ParcelType.String(),
		TaskType:         d.ParcelType.String(),
		PickupLocation:   optional(d.PickupLocation),
		DropoffLocation:  optional(d.DropoffLocation),
		Amount:           d.Amount,
		HeldAmount:       d.HeldAmount,
		PaymentStatus:    d.PaymentStatus.String(),
		PaymentReference: optional(d.PaymentReference),
		Status:           d.Status.String(),
		CustomerId:       d.CustomerID,
		CustomerName:     optional(d.CustomerName),
		AssignedTo:       d.AssignedTo,
		CreatedAt:        d.CreatedAt,
	}
	if !d.UpdatedAt.IsZero() {
		updated := d.UpdatedAt
		res.UpdatedAt = &updated
	}
	return res
}

// DeliveryList никогда не возвращает nil: пустой список кодируется как [].
func DeliveryList(ds []entities.Delivery) []dto.Delivery {
	res := make([]dto.Delivery, 0, len(ds))
	for i := range ds {
		res = append(res, Delivery(&ds[i]))
	}
	return res
}

func Stats(s *entities.Stats) dto.Stats {
	return dto.Stats{
		UsersCount:        s.UsersCount,
		TotalDeliveries:   s.TotalDeliveries,
		ActiveDeliveries:  s.ActiveDeliveries,
		PendingDeliveries: s.PendingDeliveries,
		InProgress:        s.InProgress,
		TotalHeldPayments: s.TotalHeldPayments,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
