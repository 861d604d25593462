package service

import (
	"fmt"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
)

// Decision is the outcome of applying an event to a status.
type Decision struct {
	From vo.ServiceStatus
	To   vo.ServiceStatus
}

// Changed reports whether the decision moves the service.
func (d Decision) Changed() bool {
	return d.From != d.To
}

func stay(current vo.ServiceStatus) Decision {
	return Decision{From: current, To: current}
}

func move(current, target vo.ServiceStatus) Decision {
	return Decision{From: current, To: target}
}

// Decide derives the next service status for ev. It is pure: counts of open
// orders and outstanding parts are supplied by the caller in ev.
func Decide(current vo.ServiceStatus, ev Event) (Decision, error) {
	if !current.IsValid() {
		return Decision{}, fmt.Errorf("%w: unknown current status %q", ErrInvalidTransition, current)
	}

	switch ev.Kind {
	case EventPartOrdered:
		if current.IsClosedForWork() {
			return Decision{}, fmt.Errorf("%w: cannot order parts for a %s service", ErrServiceClosed, current)
		}
		switch current {
		case vo.StatusAssigned, vo.StatusInProgress:
			return move(current, vo.StatusWaitingParts), nil
		default:
			return stay(current), nil
		}

	case EventPartsResolved:
		if current == vo.StatusWaitingParts && ev.OpenOrders == 0 {
			return move(current, vo.StatusInProgress), nil
		}
		return stay(current), nil

	case EventReturnFromWaiting:
		if current == vo.StatusInProgress {
			return stay(current), nil
		}
		if current != vo.StatusWaitingParts {
			return Decision{}, fmt.Errorf("%w: service is %s, not waiting for parts", ErrInvalidTransition, current)
		}
		if ev.OpenOrders > 0 && !ev.Force {
			return Decision{}, fmt.Errorf("%w: %d order(s) not delivered or cancelled", ErrOpenOrders, ev.OpenOrders)
		}
		return move(current, vo.StatusInProgress), nil

	case EventPartRemoved:
		if current.IsClosedForWork() {
			return Decision{}, fmt.Errorf("%w: cannot remove parts from a %s service", ErrServiceClosed, current)
		}
		return move(current, vo.StatusDevicePartsRemoved), nil

	case EventPartReturned:
		if current != vo.StatusDevicePartsRemoved || ev.PartsOut > 0 {
			return stay(current), nil
		}
		if ev.OpenOrders > 0 {
			return move(current, vo.StatusWaitingParts), nil
		}
		return move(current, vo.StatusInProgress), nil

	case EventCompleted:
		if current.IsTerminal() {
			return Decision{}, fmt.Errorf("%w: cannot complete a %s service", ErrServiceClosed, current)
		}
		if current == vo.StatusCompleted {
			return Decision{}, fmt.Errorf("%w: service is already completed", ErrInvalidTransition)
		}
		if err := ev.Completion.validate(); err != nil {
			return Decision{}, err
		}
		return move(current, vo.StatusCompleted), nil

	case EventDelivered:
		if current != vo.StatusCompleted {
			return Decision{}, fmt.Errorf("%w: only completed services can be delivered, service is %s", ErrInvalidTransition, current)
		}
		return move(current, vo.StatusDelivered), nil

	case EventAssigned:
		if ev.TechnicianID == 0 {
			return Decision{}, fmt.Errorf("%w: technician is required", ErrInvalidTransition)
		}
		switch current {
		case vo.StatusPending, vo.StatusAssigned, vo.StatusClientNotHome, vo.StatusClientNotAnswering:
			return move(current, vo.StatusAssigned), nil
		default:
			return Decision{}, fmt.Errorf("%w: cannot assign a %s service", ErrInvalidTransition, current)
		}

	case EventStatusSet:
		if !ev.Target.IsValid() {
			return Decision{}, fmt.Errorf("%w: unknown target status %q", ErrInvalidTransition, ev.Target)
		}
		if ev.Target == current {
			return stay(current), nil
		}
		if !current.CanTransitionTo(ev.Target) {
			return Decision{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, ev.Target)
		}
		return move(current, ev.Target), nil

	case EventAppointmentReminder:
		if current.IsClosedForWork() {
			return Decision{}, fmt.Errorf("%w: no appointment for a %s service", ErrServiceClosed, current)
		}
		return stay(current), nil

	default:
		return Decision{}, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev.Kind)
	}
}
