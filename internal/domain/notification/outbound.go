package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
)

// OutboundMessage is an outbox row: written with the transition that caused it
// and handed to a transport at most once after commit.
type OutboundMessage struct {
	id               uint
	messageID        string
	channel          vo.Channel
	recipient        string
	subject          string
	body             string
	relatedServiceID *uint
	status           vo.DeliveryStatus
	errorMessage     string
	providerID       string
	attemptedAt      *time.Time
	createdAt        time.Time
}

func NewOutboundMessage(channel vo.Channel, recipient, subject, body string, relatedServiceID *uint) (*OutboundMessage, error) {
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel: %s", channel)
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, fmt.Errorf("recipient is required")
	}
	if body == "" {
		return nil, fmt.Errorf("body is required")
	}
	return &OutboundMessage{
		messageID:        uuid.NewString(),
		channel:          channel,
		recipient:        recipient,
		subject:          subject,
		body:             body,
		relatedServiceID: relatedServiceID,
		status:           vo.DeliveryQueued,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructOutboundMessage(
	id uint,
	messageID string,
	channel vo.Channel,
	recipient, subject, body string,
	relatedServiceID *uint,
	status vo.DeliveryStatus,
	errorMessage, providerID string,
	attemptedAt *time.Time,
	createdAt time.Time,
) (*OutboundMessage, error) {
	if id == 0 {
		return nil, fmt.Errorf("outbound message ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid delivery status: %s", status)
	}
	return &OutboundMessage{
		id:               id,
		messageID:        messageID,
		channel:          channel,
		recipient:        recipient,
		subject:          subject,
		body:             body,
		relatedServiceID: relatedServiceID,
		status:           status,
		errorMessage:     errorMessage,
		providerID:       providerID,
		attemptedAt:      attemptedAt,
		createdAt:        createdAt,
	}, nil
}

func (m *OutboundMessage) ID() uint                  { return m.id }
func (m *OutboundMessage) MessageID() string         { return m.messageID }
func (m *OutboundMessage) Channel() vo.Channel       { return m.channel }
func (m *OutboundMessage) Recipient() string         { return m.recipient }
func (m *OutboundMessage) Subject() string           { return m.subject }
func (m *OutboundMessage) Body() string              { return m.body }
func (m *OutboundMessage) RelatedServiceID() *uint   { return m.relatedServiceID }
func (m *OutboundMessage) Status() vo.DeliveryStatus { return m.status }
func (m *OutboundMessage) ErrorMessage() string      { return m.errorMessage }
func (m *OutboundMessage) ProviderID() string        { return m.providerID }
func (m *OutboundMessage) AttemptedAt() *time.Time   { return m.attemptedAt }
func (m *OutboundMessage) CreatedAt() time.Time      { return m.createdAt }

func (m *OutboundMessage) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("outbound message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("outbound message ID cannot be zero")
	}
	m.id = id
	return nil
}

// MarkAttempted records the single delivery attempt.
func (m *OutboundMessage) MarkAttempted(at time.Time) {
	attempted := at.UTC()
	m.attemptedAt = &attempted
}

func (m *OutboundMessage) MarkSent(providerID string) {
	m.status = vo.DeliverySent
	m.providerID = providerID
	m.errorMessage = ""
}

func (m *OutboundMessage) MarkFailed(err error) {
	m.status = vo.DeliveryFailed
	if err != nil {
		m.errorMessage = truncate(err.Error(), 500)
	}
}

func (m *OutboundMessage) MarkSkipped(reason string) {
	m.status = vo.DeliverySkipped
	m.errorMessage = truncate(reason, 500)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
