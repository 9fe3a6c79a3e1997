package delivery

import "dorm-delivery/internal/entities"

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}

	var reference string
	if d.PaymentReference != nil {
		reference = *d.PaymentReference
	}

	return &entities.Delivery{
		ID:               d.ID,
		Title:            d.Title,
		Description:      d.Description,
		ParcelType:       entities.ParcelType(d.ParcelType),
		PickupLocation:   d.PickupLocation,
		DropoffLocation:  d.DropoffLocation,
		Amount:           d.Amount,
		HeldAmount:       d.HeldAmount,
		PaymentStatus:    entities.PaymentStatus(d.PaymentStatus),
		PaymentReference: reference,
		Status:           entities.DeliveryStatus(d.Status),
		CustomerID:       d.CustomerID,
		AssignedTo:       d.AssignedTo,
		CustomerName:     d.CustomerName,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func ToDomainList(deliveriesDB []DeliveryDB) []entities.Delivery {
	if len(deliveriesDB) == 0 {
		return []entities.Delivery{}
	}

	result := make([]entities.Delivery, len(deliveriesDB))
	for i := range deliveriesDB {
		result[i] = *ToDomain(&deliveriesDB[i])
	}
	return result
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}
	modifyDB := &DeliveryModifyDB{
		AssignedTo:       d.AssignedTo,
		PaymentReference: d.PaymentReference,
		HeldAmount:       d.HeldAmount,
	}

	if d.Status != nil {
		status := d.Status.String()
		modifyDB.Status = &status
	}
	if d.PaymentStatus != nil {
		paymentStatus := d.PaymentStatus.String()
		modifyDB.PaymentStatus = &paymentStatus
	}

	return modifyDB
}

func ToStatsDomain(s *StatsDB) *entities.Stats {
	if s == nil {
		return nil
	}
	return &entities.Stats{
		UsersCount:        s.UsersCount,
		TotalDeliveries:   s.TotalDeliveries,
		ActiveDeliveries:  s.ActiveDeliveries,
		PendingDeliveries: s.PendingDeliveries,
		InProgress:        s.InProgress,
		TotalHeldPayments: s.TotalHeldPayments,
	}
}
