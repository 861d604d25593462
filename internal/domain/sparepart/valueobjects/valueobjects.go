package valueobjects

import (
	"fmt"
	"strings"
)

// OrderStatus is the closed set of spare part order states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {
		OrderStatusOrdered,
		OrderStatusDelivered,
		OrderStatusCancelled,
	},
	OrderStatusOrdered: {
		OrderStatusDelivered,
		OrderStatusCancelled,
	},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrdered, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the order still blocks its service.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusOrdered
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func NewOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status: %s", s)
	}
	return status, nil
}

// OpenOrderStatuses lists the statuses counted as open.
func OpenOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusOrdered}
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) String() string {
	return string(u)
}

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// NewUrgency parses u, defaulting an empty value to normal.
func NewUrgency(u string) (Urgency, error) {
	if strings.TrimSpace(u) == "" {
		return UrgencyNormal, nil
	}
	urgency := Urgency(u)
	if !urgency.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", u)
	}
	return urgency, nil
}

type WarrantyStatus string

const (
	WarrantyIn  WarrantyStatus = "u garanciji"
	WarrantyOut WarrantyStatus = "van garancije"
)

func (w WarrantyStatus) String() string {
	return string(w)
}

func (w WarrantyStatus) IsValid() bool {
	return w == WarrantyIn || w == WarrantyOut
}

func NewWarrantyStatus(w string) (WarrantyStatus, error) {
	status := WarrantyStatus(w)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid warranty status: %q", w)
	}
	return status, nil
}
