package settlement_rule

import (
	"fmt"

	"dorm-delivery/internal/entities"
	"dorm-delivery/internal/service/settlement"
)

type RuleFactory struct{}

func NewRuleFactory() *RuleFactory {
	return &RuleFactory{}
}

func (f *RuleFactory) GetRule(status entities.DeliveryStatus) (settlement.RuleFn, error) {
	switch status {
	case entities.StatusPending:
		return notifyOnly("Your delivery request is waiting for a courier"), nil
	case entities.StatusAccepted:
		return notifyOnly("A courier accepted your delivery request"), nil
	case entities.StatusInProgress:
		return notifyOnly("Your delivery is on its way"), nil
	case entities.StatusDelivered:
		return notifyOnly("Your delivery was marked delivered, please confirm receipt"), nil
	case entities.StatusCompleted:
		return f.completedRule, nil
	case entities.StatusFailed:
		return f.failedRule, nil
	default:
		return nil, fmt.Errorf("%w: %s", settlement.ErrUndefinedStatus, status)
	}
}

func (f *RuleFactory) completedRule(d *entities.Delivery) settlement.Outcome {
	if d.PaymentStatus != entities.PaymentHeld {
		return settlement.Outcome{Message: "Delivery completed"}
	}
	released := entities.PaymentReleased
	return settlement.Outcome{
		PaymentStatus: &released,
		Message:       fmt.Sprintf("Delivery completed, %.2f released to the courier", d.HeldAmount),
	}
}

func (f *RuleFactory) failedRule(d *entities.Delivery) settlement.Outcome {
	if d.PaymentStatus != entities.PaymentHeld {
		return settlement.Outcome{Message: "Delivery failed"}
	}
	refunded := entities.PaymentRefunded
	return settlement.Outcome{
		PaymentStatus: &refunded,
		Message:       fmt.Sprintf("Delivery failed, %.2f refunded", d.HeldAmount),
	}
}

func notifyOnly(message string) settlement.RuleFn {
	return func(*entities.Delivery) settlement.Outcome {
		return settlement.Outcome{Message: message}
	}
}
