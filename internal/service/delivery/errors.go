package delivery

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTitle      = errors.New("title is required")
	ErrInvalidAmount     = errors.New("amount must be a non-negative number")
	ErrInvalidParcelType = errors.New("invalid parcel type")

	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyPaid       = errors.New("delivery already paid")
	ErrNoHeldFunds       = errors.New("no held funds to release")

	ErrForbidden = errors.New("forbidden")

	ErrCustomersOnly = fmt.Errorf("%w: only customers can create delivery requests", ErrForbidden)
	ErrDeliveryOnly  = fmt.Errorf("%w: only delivery users can view available tasks", ErrForbidden)
	ErrAcceptOnly    = fmt.Errorf("%w: only delivery users can accept tasks", ErrForbidden)
	ErrNotAssignee   = fmt.Errorf("%w: not assigned to you", ErrForbidden)
	ErrNotOwner      = fmt.Errorf("%w: not your delivery", ErrForbidden)

	ErrTaskNotAvailable = fmt.Errorf("%w: task not available", ErrInvalidTransition)
	ErrNotDelivered     = fmt.Errorf("%w: delivery not yet marked delivered", ErrInvalidTransition)
	ErrReleaseTooEarly  = fmt.Errorf("%w: driver hasn't marked delivered yet", ErrInvalidTransition)
	ErrConcurrentUpdate = fmt.Errorf("%w: concurrent update", ErrInvalidTransition)
)
