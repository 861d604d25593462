package sparepart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
)

// ErrInvalidStatusChange is returned when an update asks for a forbidden order transition.
var ErrInvalidStatusChange = errors.New("invalid spare part order status change")

// FieldError reports a rejected input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// SparePartOrder is one request for a physical replacement part.
type SparePartOrder struct {
	id                uint
	serviceID         *uint
	partName          string
	partNumber        string
	quantity          int
	urgency           vo.Urgency
	warrantyStatus    vo.WarrantyStatus
	status            vo.OrderStatus
	description       string
	notes             string
	supplierName      string
	estimatedCost     *float64
	estimatedDelivery *time.Time
	requestedBy       uint
	createdAt         time.Time
	updatedAt         time.Time
}

// NewOrderParams are the raw intake fields.
type NewOrderParams struct {
	ServiceID      *uint
	PartName       string
	PartNumber     string
	Quantity       int
	Urgency        string
	WarrantyStatus string
	Description    string
	RequestedBy    uint
}

// NewSparePartOrder validates p and builds a pending order. Quantity 0 means
// "not supplied" and defaults to 1; an empty urgency defaults to normal.
func NewSparePartOrder(p NewOrderParams) (*SparePartOrder, error) {
	partName := strings.TrimSpace(p.PartName)
	if partName == "" {
		return nil, fieldError("part_name", "part name is required")
	}
	if len(partName) > 255 {
		return nil, fieldError("part_name", "part name exceeds 255 characters")
	}

	if strings.TrimSpace(p.WarrantyStatus) == "" {
		return nil, fieldError("warranty_status", "warranty status is required")
	}
	warranty, err := vo.NewWarrantyStatus(p.WarrantyStatus)
	if err != nil {
		return nil, fieldError("warranty_status", fmt.Sprintf("must be one of [%s, %s]", vo.WarrantyIn, vo.WarrantyOut))
	}

	quantity := p.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, fieldError("quantity", "quantity must be a positive integer")
	}

	urgency, err := vo.NewUrgency(p.Urgency)
	if err != nil {
		return nil, fieldError("urgency", "must be one of [low, normal, high, urgent]")
	}

	if p.ServiceID != nil && *p.ServiceID == 0 {
		return nil, fieldError("service_id", "service ID must be positive")
	}

	now := time.Now().UTC()
	return &SparePartOrder{
		serviceID:      p.ServiceID,
		partName:       partName,
		partNumber:     strings.TrimSpace(p.PartNumber),
		quantity:       quantity,
		urgency:        urgency,
		warrantyStatus: warranty,
		status:         vo.OrderStatusPending,
		description:    strings.TrimSpace(p.Description),
		requestedBy:    p.RequestedBy,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructSparePartOrder(
	id uint,
	serviceID *uint,
	partName, partNumber string,
	quantity int,
	urgency vo.Urgency,
	warrantyStatus vo.WarrantyStatus,
	status vo.OrderStatus,
	description, notes, supplierName string,
	estimatedCost *float64,
	estimatedDelivery *time.Time,
	requestedBy uint,
	createdAt, updatedAt time.Time,
) (*SparePartOrder, error) {
	if id == 0 {
		return nil, fmt.Errorf("spare part order ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}
	return &SparePartOrder{
		id:                id,
		serviceID:         serviceID,
		partName:          partName,
		partNumber:        partNumber,
		quantity:          quantity,
		urgency:           urgency,
		warrantyStatus:    warrantyStatus,
		status:            status,
		description:       description,
		notes:             notes,
		supplierName:      supplierName,
		estimatedCost:     estimatedCost,
		estimatedDelivery: estimatedDelivery,
		requestedBy:       requestedBy,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (o *SparePartOrder) ID() uint                          { return o.id }
func (o *SparePartOrder) ServiceID() *uint                  { return o.serviceID }
func (o *SparePartOrder) PartName() string                  { return o.partName }
func (o *SparePartOrder) PartNumber() string                { return o.partNumber }
func (o *SparePartOrder) Quantity() int                     { return o.quantity }
func (o *SparePartOrder) Urgency() vo.Urgency               { return o.urgency }
func (o *SparePartOrder) WarrantyStatus() vo.WarrantyStatus { return o.warrantyStatus }
func (o *SparePartOrder) Status() vo.OrderStatus            { return o.status }
func (o *SparePartOrder) Description() string               { return o.description }
func (o *SparePartOrder) Notes() string                     { return o.notes }
func (o *SparePartOrder) SupplierName() string              { return o.supplierName }
func (o *SparePartOrder) EstimatedCost() *float64           { return o.estimatedCost }
func (o *SparePartOrder) EstimatedDelivery() *time.Time     { return o.estimatedDelivery }
func (o *SparePartOrder) RequestedBy() uint                 { return o.requestedBy }
func (o *SparePartOrder) CreatedAt() time.Time              { return o.createdAt }
func (o *SparePartOrder) UpdatedAt() time.Time              { return o.updatedAt }

func (o *SparePartOrder) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("spare part order ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("spare part order ID cannot be zero")
	}
	o.id = id
	return nil
}

// OrderUpdate is an admin or supplier edit. Nil fields are left unchanged.
type OrderUpdate struct {
	Status            *vo.OrderStatus
	Notes             *string
	SupplierName      *string
	EstimatedCost     *float64
	EstimatedDelivery *time.Time
}

// Apply edits the order and reports whether the status moved into a terminal state.
func (o *SparePartOrder) Apply(u OrderUpdate, now time.Time) (resolved bool, err error) {
	if u.EstimatedCost != nil && *u.EstimatedCost < 0 {
		return false, fieldError("estimated_cost", "estimated cost must not be negative")
	}

	if u.Status != nil && *u.Status != o.status {
		if !u.Status.IsValid() {
			return false, fieldError("status", "must be one of [pending, ordered, delivered, cancelled]")
		}
		if !o.status.CanTransitionTo(*u.Status) {
			return false, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, o.status, *u.Status)
		}
		o.status = *u.Status
		resolved = o.status.IsTerminal()
	}

	if u.Notes != nil {
		o.notes = strings.TrimSpace(*u.Notes)
	}
	if u.SupplierName != nil {
		o.supplierName = strings.TrimSpace(*u.SupplierName)
	}
	if u.EstimatedCost != nil {
		cost := *u.EstimatedCost
		o.estimatedCost = &cost
	}
	if u.EstimatedDelivery != nil {
		delivery := *u.EstimatedDelivery
		o.estimatedDelivery = &delivery
	}
	o.updatedAt = now
	return resolved, nil
}
