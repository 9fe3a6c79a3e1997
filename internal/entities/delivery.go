package entities

import "time"

type Delivery struct {
	ID               int64
	Title            string
	Description      string
	ParcelType       ParcelType
	PickupLocation   string
	DropoffLocation  string
	Amount           float64
	HeldAmount       float64
	PaymentStatus    PaymentStatus
	PaymentReference string
	Status           DeliveryStatus
	CustomerID       int64
	AssignedTo       *int64
	CustomerName     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (d *Delivery) IsOwnedBy(userID int64) bool {
	return d.CustomerID == userID
}

func (d *Delivery) IsAssignedTo(userID int64) bool {
	return d.AssignedTo != nil && *d.AssignedTo == userID
}

type DeliveryCreate struct {
	Title           string
	Description     string
	ParcelType      ParcelType
	PickupLocation  string
	DropoffLocation string
	Amount          float64
}

// DeliveryModify - частичное обновление, nil поля не трогаются.
type DeliveryModify struct {
	Status           *DeliveryStatus
	AssignedTo       *int64
	PaymentStatus    *PaymentStatus
	PaymentReference *string
	HeldAmount       *float64
}

// DeliveryFilter задает выборку списков. Пустые поля не фильтруют.
type DeliveryFilter struct {
	CustomerID *int64
	AssignedTo *int64
	Status     *DeliveryStatus
}

type PaymentReceipt struct {
	Status           PaymentStatus
	PaymentReference string
}

type ParcelType string

const (
	ParcelTypeParcel  ParcelType = "parcel"
	ParcelTypeCanteen ParcelType = "canteen"
)

const DefaultParcelType = ParcelTypeParcel

func (p ParcelType) String() string {
	return string(p)
}

type DeliveryStatus string

const (
	StatusPending    DeliveryStatus = "pending"
	StatusAccepted   DeliveryStatus = "accepted"
	StatusInProgress DeliveryStatus = "in_progress"
	StatusDelivered  DeliveryStatus = "delivered"
	StatusCompleted  DeliveryStatus = "completed"
	StatusFailed     DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusDelivered, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal - из этих статусов переходов нет.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentHeld     PaymentStatus = "held"
	PaymentReleased PaymentStatus = "released"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) String() string {
	return string(p)
}
