package entities

type Stats struct {
	UsersCount        int64
	TotalDeliveries   int64
	ActiveDeliveries  int64
	PendingDeliveries int64
	InProgress        int64
	TotalHeldPayments int64
}
