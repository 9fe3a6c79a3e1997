package delivery

import "time"

type DeliveryDB struct {
	ID               int64
	Title            string
	Description      string
	ParcelType       string
	PickupLocation   string
	DropoffLocation  string
	Amount           float64
	HeldAmount       float64
	PaymentStatus    string
	PaymentReference *string
	Status           string
	CustomerID       int64
	AssignedTo       *int64
	CustomerName     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type DeliveryModifyDB struct {
	Status           *string
	AssignedTo       *int64
	PaymentStatus    *string
	PaymentReference *string
	HeldAmount       *float64
}

type StatsDB struct {
	UsersCount        int64
	TotalDeliveries   int64
	ActiveDeliveries  int64
	PendingDeliveries int64
	InProgress        int64
	TotalHeldPayments int64
}
