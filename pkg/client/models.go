package client

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleDelivery, RoleAdmin:
		return true
	default:
		return false
	}
}

// Статусы заявки в том виде, как их отдает API.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type User struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   Role    `json:"role"`
	Rating float64 `json:"rating"`
}

type DeliveryCreate struct {
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	PickupLocation  string   `json:"pickup_location,omitempty"`
	DropoffLocation string   `json:"dropoff_location,omitempty"`
	ParcelType      string   `json:"parcel_type,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
}

type Delivery struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      *string    `json:"description"`
	ParcelType       string     `json:"parcel_type"`
	PickupLocation   *string    `json:"pickup_location"`
	DropoffLocation  *string    `json:"dropoff_location"`
	Amount           float64    `json:"amount"`
	HeldAmount       float64    `json:"held_amount"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentReference *string    `json:"payment_reference"`
	Status           string     `json:"status"`
	CustomerID       int64      `json:"customer_id"`
	CustomerName     *string    `json:"customer_name,omitempty"`
	AssignedTo       *int64     `json:"assigned_to"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type PaymentReceipt struct {
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference"`
}

type Stats struct {
	UsersCount        int64 `json:"users_count"`
	TotalDeliveries   int64 `json:"total_deliveries"`
	ActiveDeliveries  int64 `json:"active_deliveries"`
	PendingDeliveries int64 `json:"pending_deliveries"`
	InProgress        int64 `json:"in_progress"`
	TotalHeldPayments int64 `json:"total_held_payments"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
