package removedpart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/removedpart/valueobjects"
)

// ErrAlreadyReturned is returned when a part is marked returned twice.
var ErrAlreadyReturned = errors.New("removed part is already returned")

// RemovedPart records a part taken off a device while it is being repaired.
type RemovedPart struct {
	id                 uint
	serviceID          uint
	partName           string
	removalDate        time.Time
	removalReason      string
	currentLocation    vo.PartLocation
	expectedReturnDate *time.Time
	actualReturnDate   *time.Time
	partStatus         string
	technicianNotes    string
	createdAt          time.Time
	updatedAt          time.Time
}

type NewRemovedPartParams struct {
	ServiceID          uint
	PartName           string
	RemovalDate        *time.Time
	RemovalReason      string
	CurrentLocation    string
	ExpectedReturnDate *time.Time
	PartStatus         string
	TechnicianNotes    string
}

func NewRemovedPart(p NewRemovedPartParams) (*RemovedPart, error) {
	if p.ServiceID == 0 {
		return nil, fmt.Errorf("service_id: service ID is required")
	}
	partName := strings.TrimSpace(p.PartName)
	if partName == "" {
		return nil, fmt.Errorf("part_name: part name is required")
	}
	reason := strings.TrimSpace(p.RemovalReason)
	if reason == "" {
		return nil, fmt.Errorf("removal_reason: removal reason is required")
	}
	location, err := vo.NewPartLocation(p.CurrentLocation)
	if err != nil {
		return nil, fmt.Errorf("current_location: %w", err)
	}
	if location == vo.LocationReturned {
		return nil, fmt.Errorf("current_location: a new removed part cannot already be returned")
	}

	now := time.Now().UTC()
	removalDate := now
	if p.RemovalDate != nil {
		removalDate = p.RemovalDate.UTC()
	}
	if p.ExpectedReturnDate != nil && p.ExpectedReturnDate.Before(removalDate) {
		return nil, fmt.Errorf("expected_return_date: must not be before the removal date")
	}

	status := strings.TrimSpace(p.PartStatus)
	if status == "" {
		status = vo.PartStatusRemoved
	}

	return &RemovedPart{
		serviceID:          p.ServiceID,
		partName:           partName,
		removalDate:        removalDate,
		removalReason:      reason,
		currentLocation:    location,
		expectedReturnDate: p.ExpectedReturnDate,
		partStatus:         status,
		technicianNotes:    strings.TrimSpace(p.TechnicianNotes),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructRemovedPart(
	id, serviceID uint,
	partName string,
	removalDate time.Time,
	removalReason string,
	currentLocation vo.PartLocation,
	expectedReturnDate, actualReturnDate *time.Time,
	partStatus, technicianNotes string,
	createdAt, updatedAt time.Time,
) (*RemovedPart, error) {
	if id == 0 {
		return nil, fmt.Errorf("removed part ID cannot be zero")
	}
	if !currentLocation.IsValid() {
		return nil, fmt.Errorf("invalid part location: %s", currentLocation)
	}
	return &RemovedPart{
		id:                 id,
		serviceID:          serviceID,
		partName:           partName,
		removalDate:        removalDate,
		removalReason:      removalReason,
		currentLocation:    currentLocation,
		expectedReturnDate: expectedReturnDate,
		actualReturnDate:   actualReturnDate,
		partStatus:         partStatus,
		technicianNotes:    technicianNotes,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (r *RemovedPart) ID() uint                         { return r.id }
func (r *RemovedPart) ServiceID() uint                  { return r.serviceID }
func (r *RemovedPart) PartName() string                 { return r.partName }
func (r *RemovedPart) RemovalDate() time.Time           { return r.removalDate }
func (r *RemovedPart) RemovalReason() string            { return r.removalReason }
func (r *RemovedPart) CurrentLocation() vo.PartLocation { return r.currentLocation }
func (r *RemovedPart) ExpectedReturnDate() *time.Time {
	return r.expectedReturnDate
}
func (r *RemovedPart) ActualReturnDate() *time.Time { return r.actualReturnDate }
func (r *RemovedPart) PartStatus() string           { return r.partStatus }
func (r *RemovedPart) TechnicianNotes() string      { return r.technicianNotes }
func (r *RemovedPart) CreatedAt() time.Time         { return r.createdAt }
func (r *RemovedPart) UpdatedAt() time.Time         { return r.updatedAt }

// IsOut reports whether the part is still off the device.
func (r *RemovedPart) IsOut() bool {
	return r.actualReturnDate == nil
}

func (r *RemovedPart) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("removed part ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("removed part ID cannot be zero")
	}
	r.id = id
	return nil
}

// MarkReturned sets the actual return date and moves the part back to the device.
func (r *RemovedPart) MarkReturned(at time.Time, notes string) error {
	if r.actualReturnDate != nil {
		return ErrAlreadyReturned
	}
	if at.Before(r.removalDate) {
		return fmt.Errorf("actual_return_date: must not be before the removal date")
	}
	returned := at.UTC()
	r.actualReturnDate = &returned
	r.currentLocation = vo.LocationReturned
	r.partStatus = vo.PartStatusReturned
	if notes = strings.TrimSpace(notes); notes != "" {
		r.technicianNotes = notes
	}
	r.updatedAt = time.Now().UTC()
	return nil
}
