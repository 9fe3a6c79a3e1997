package delivery

import (
	"slices"

	"dorm-delivery/internal/entities"
)

type Action string

const (
	ActionAccept        Action = "accept"
	ActionStart         Action = "start"
	ActionMarkDelivered Action = "mark-delivered"
	ActionFail          Action = "fail"
	ActionConfirm       Action = "confirm"
)

type transition struct {
	from []entities.DeliveryStatus
	to   entities.DeliveryStatus
	// permit проверяет право актора на заявку, nil - проверка только по роли
	permit func(actor *entities.User, d *entities.Delivery) error
	// role, если задана, проверяется до чтения заявки
	role         entities.Role
	roleErr      error
	statusErr    error
	assignsActor bool
}

var transitions = map[Action]transition{
	ActionAccept: {
		from:         []entities.DeliveryStatus{entities.StatusPending},
		to:           entities.StatusAccepted,
		role:         entities.RoleDelivery,
		roleErr:      ErrAcceptOnly,
		statusErr:    ErrTaskNotAvailable,
		assignsActor: true,
	},
	ActionStart: {
		from:      []entities.DeliveryStatus{entities.StatusAccepted},
		to:        entities.StatusInProgress,
		permit:    assigneeOnly,
		statusErr: ErrInvalidTransition,
	},
	ActionMarkDelivered: {
		from:      []entities.DeliveryStatus{entities.StatusInProgress},
		to:        entities.StatusDelivered,
		permit:    assigneeOnly,
		statusErr: ErrInvalidTransition,
	},
	ActionFail: {
		from:      []entities.DeliveryStatus{entities.StatusAccepted, entities.StatusInProgress},
		to:        entities.StatusFailed,
		permit:    assigneeOnly,
		statusErr: ErrInvalidTransition,
	},
	ActionConfirm: {
		from:      []entities.DeliveryStatus{entities.StatusDelivered},
		to:        entities.StatusCompleted,
		permit:    ownerOnly,
		statusErr: ErrNotDelivered,
	},
}

func (t transition) allowedFrom(status entities.DeliveryStatus) bool {
	return slices.Contains(t.from, status)
}

func assigneeOnly(actor *entities.User, d *entities.Delivery) error {
	if !d.IsAssignedTo(actor.ID) {
		return ErrNotAssignee
	}
	return nil
}

func ownerOnly(actor *entities.User, d *entities.Delivery) error {
	if !d.IsOwnedBy(actor.ID) {
		return ErrNotOwner
	}
	return nil
}

// ParseAction возвращает действие по сегменту пути.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := transitions[a]
	return a, ok
}
