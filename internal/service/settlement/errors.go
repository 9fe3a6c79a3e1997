package settlement

import "errors"

var (
	ErrUndefinedStatus = errors.New("undefined delivery status")
	ErrInvalidEvent    = errors.New("delivery id is required")
	ErrNotifyFailed    = errors.New("notify customer")
)
