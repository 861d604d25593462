package valueobjects

import "fmt"

// ServiceStatus is the closed set of repair ticket states.
type ServiceStatus string

const (
	StatusPending               ServiceStatus = "pending"
	StatusAssigned              ServiceStatus = "assigned"
	StatusInProgress            ServiceStatus = "in_progress"
	StatusWaitingParts          ServiceStatus = "waiting_parts"
	StatusDevicePartsRemoved    ServiceStatus = "device_parts_removed"
	StatusCompleted             ServiceStatus = "completed"
	StatusDelivered             ServiceStatus = "delivered"
	StatusCancelled             ServiceStatus = "cancelled"
	StatusCustomerRefusedRepair ServiceStatus = "customer_refused_repair"
	StatusRepairFailed          ServiceStatus = "repair_failed"
	StatusClientNotHome         ServiceStatus = "client_not_home"
	StatusClientNotAnswering    ServiceStatus = "client_not_answering"
)

var validServiceStatuses = map[ServiceStatus]bool{
	StatusPending:               true,
	StatusAssigned:              true,
	StatusInProgress:            true,
	StatusWaitingParts:          true,
	StatusDevicePartsRemoved:    true,
	StatusCompleted:             true,
	StatusDelivered:             true,
	StatusCancelled:             true,
	StatusCustomerRefusedRepair: true,
	StatusRepairFailed:          true,
	StatusClientNotHome:         true,
	StatusClientNotAnswering:    true,
}

var terminalStatuses = map[ServiceStatus]bool{
	StatusDelivered:             true,
	StatusCancelled:             true,
	StatusCustomerRefusedRepair: true,
	StatusRepairFailed:          true,
}

// manualTransitions lists the targets a user may pick directly. Spare-part and
// removed-part driven states are reachable only through their own events.
var manualTransitions = map[ServiceStatus][]ServiceStatus{
	StatusPending: {
		StatusAssigned,
		StatusCancelled,
	},
	StatusAssigned: {
		StatusInProgress,
		StatusClientNotHome,
		StatusClientNotAnswering,
		StatusCustomerRefusedRepair,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusCustomerRefusedRepair,
		StatusRepairFailed,
		StatusCancelled,
	},
	StatusWaitingParts: {
		StatusCancelled,
	},
	StatusDevicePartsRemoved: {
		StatusCancelled,
	},
	StatusClientNotHome: {
		StatusAssigned,
		StatusInProgress,
		StatusCancelled,
	},
	StatusClientNotAnswering: {
		StatusAssigned,
		StatusInProgress,
		StatusCancelled,
	},
	StatusCompleted: {
		StatusDelivered,
	},
}

func (s ServiceStatus) String() string {
	return string(s)
}

func (s ServiceStatus) IsValid() bool {
	return validServiceStatuses[s]
}

// IsTerminal reports whether no further transition is possible.
func (s ServiceStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsClosedForWork reports whether parts may no longer be ordered or removed.
func (s ServiceStatus) IsClosedForWork() bool {
	return s == StatusCompleted || s.IsTerminal()
}

func (s ServiceStatus) CanTransitionTo(target ServiceStatus) bool {
	for _, allowed := range manualTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns a copy of the manual transition targets.
func (s ServiceStatus) AllowedTargets() []ServiceStatus {
	targets := manualTransitions[s]
	out := make([]ServiceStatus, len(targets))
	copy(out, targets)
	return out
}

func NewServiceStatus(s string) (ServiceStatus, error) {
	status := ServiceStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid service status: %s", s)
	}
	return status, nil
}

// AllStatuses returns every status in declaration order.
func AllStatuses() []ServiceStatus {
	return []ServiceStatus{
		StatusPending, StatusAssigned, StatusInProgress, StatusWaitingParts,
		StatusDevicePartsRemoved, StatusCompleted, StatusDelivered, StatusCancelled,
		StatusCustomerRefusedRepair, StatusRepairFailed, StatusClientNotHome,
		StatusClientNotAnswering,
	}
}
