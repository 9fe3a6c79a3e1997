package payment_reference

import "github.com/google/uuid"

// ReferenceFactory выдает идентификаторы симулированных платежей.
type ReferenceFactory struct{}

func New() *ReferenceFactory {
	return &ReferenceFactory{}
}

func (f *ReferenceFactory) NewReference() string {
	return uuid.NewString()
}
