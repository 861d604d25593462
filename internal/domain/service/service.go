package service

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
)

// Service is one repair ticket for one client appliance.
type Service struct {
	id                uint
	clientID          uint
	applianceID       uint
	technicianID      *uint
	businessPartnerID *uint
	status            vo.ServiceStatus
	description       string
	technicianNotes   string
	cost              *float64
	completedDate     *time.Time
	isCompletelyFixed bool
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewService(clientID, applianceID uint, description string, businessPartnerID *uint) (*Service, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if applianceID == 0 {
		return nil, fmt.Errorf("appliance ID is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}

	now := time.Now().UTC()
	return &Service{
		clientID:          clientID,
		applianceID:       applianceID,
		businessPartnerID: businessPartnerID,
		status:            vo.StatusPending,
		description:       description,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

func ReconstructService(
	id uint,
	clientID uint,
	applianceID uint,
	technicianID *uint,
	businessPartnerID *uint,
	status vo.ServiceStatus,
	description string,
	technicianNotes string,
	cost *float64,
	completedDate *time.Time,
	isCompletelyFixed bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Service, error) {
	if id == 0 {
		return nil, fmt.Errorf("service ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid service status: %s", status)
	}

	return &Service{
		id:                id,
		clientID:          clientID,
		applianceID:       applianceID,
		technicianID:      technicianID,
		businessPartnerID: businessPartnerID,
		status:            status,
		description:       description,
		technicianNotes:   technicianNotes,
		cost:              cost,
		completedDate:     completedDate,
		isCompletelyFixed: isCompletelyFixed,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *Service) ID() uint                 { return s.id }
func (s *Service) ClientID() uint           { return s.clientID }
func (s *Service) ApplianceID() uint        { return s.applianceID }
func (s *Service) TechnicianID() *uint      { return s.technicianID }
func (s *Service) BusinessPartnerID() *uint { return s.businessPartnerID }
func (s *Service) Status() vo.ServiceStatus { return s.status }
func (s *Service) Description() string      { return s.description }
func (s *Service) TechnicianNotes() string  { return s.technicianNotes }
func (s *Service) Cost() *float64           { return s.cost }
func (s *Service) CompletedDate() *time.Time {
	return s.completedDate
}
func (s *Service) IsCompletelyFixed() bool { return s.isCompletelyFixed }
func (s *Service) Version() int            { return s.version }
func (s *Service) CreatedAt() time.Time    { return s.createdAt }
func (s *Service) UpdatedAt() time.Time    { return s.updatedAt }

func (s *Service) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("service ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsAssignedTo reports whether userID is the assigned technician.
func (s *Service) IsAssignedTo(userID uint) bool {
	return s.technicianID != nil && *s.technicianID == userID
}

// IsPartnerService reports whether the service was opened by partnerID.
func (s *Service) IsPartnerService(partnerID uint) bool {
	return s.businessPartnerID != nil && *s.businessPartnerID == partnerID
}

// VisibleTo reports whether p may read the service.
func (s *Service) VisibleTo(p shared.Principal) bool {
	switch {
	case p.IsAdmin():
		return true
	case p.IsTechnician():
		return s.IsAssignedTo(p.UserID)
	case p.IsBusinessPartner():
		return s.IsPartnerService(p.UserID)
	case p.IsCustomer():
		return p.OwnsClient(s.clientID)
	}
	return false
}

// WorkableBy reports whether p may record work on the service: order parts,
// remove parts or change its status. Partners may only order parts.
func (s *Service) WorkableBy(p shared.Principal) bool {
	switch {
	case p.IsAdmin():
		return true
	case p.IsTechnician():
		return s.IsAssignedTo(p.UserID)
	case p.IsBusinessPartner():
		return s.IsPartnerService(p.UserID)
	}
	return false
}

// Transition decides and applies ev. It returns the decision so the caller
// can tell a no-op from a move. The version is bumped once per mutation.
func (s *Service) Transition(ev Event, now time.Time) (Decision, error) {
	d, err := Decide(s.status, ev)
	if err != nil {
		return Decision{}, err
	}

	if d.To == vo.StatusAssigned && ev.Kind == EventStatusSet && s.technicianID == nil {
		return Decision{}, fmt.Errorf("%w: assign a technician first", ErrInvalidTransition)
	}

	mutated := d.Changed()
	switch ev.Kind {
	case EventAssigned:
		if !s.IsAssignedTo(ev.TechnicianID) {
			techID := ev.TechnicianID
			s.technicianID = &techID
			mutated = true
		}
	case EventCompleted:
		cost := *ev.Completion.Cost
		s.cost = &cost
		s.technicianNotes = ev.Completion.TechnicianNotes
		s.isCompletelyFixed = *ev.Completion.IsCompletelyFixed
		completed := now
		s.completedDate = &completed
	}

	if mutated {
		s.status = d.To
		s.updatedAt = now
		s.version++
	}
	return d, nil
}
