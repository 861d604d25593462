package notification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/frigoservis/servis/internal/domain/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

// Sender delivers one message over one transport and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) (string, error)
}

// DuplicateGuard suppresses identical messages to the same recipient within a window.
// A failed send releases its claim so an operator can resend the same text.
type DuplicateGuard interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Dispatcher hands committed outbox rows to their transports. Every message is
// attempted at most once; failures become warnings and are never retried.
type Dispatcher struct {
	repo     notification.OutboundMessageRepository
	senders  map[vo.Channel]Sender
	guard    DuplicateGuard
	guardTTL time.Duration
	logger   logger.Interface
}

func NewDispatcher(
	repo notification.OutboundMessageRepository,
	guard DuplicateGuard,
	guardTTL time.Duration,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		senders:  make(map[vo.Channel]Sender),
		guard:    guard,
		guardTTL: guardTTL,
		logger:   logger,
	}
}

// Register binds a transport to a channel. Call before serving requests.
func (d *Dispatcher) Register(channel vo.Channel, sender Sender) {
	d.senders[channel] = sender
}

// Dispatch sends msgs and returns one human readable warning per failed message.
func (d *Dispatcher) Dispatch(ctx context.Context, msgs []*notification.OutboundMessage) []string {
	var warnings []string
	for _, msg := range msgs {
		if w := d.dispatchOne(ctx, msg); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func (d *Dispatcher) dispatchOne(ctx context.Context, msg *notification.OutboundMessage) string {
	log := d.logger.With("message_id", msg.MessageID(), "channel", msg.Channel())
	to := maskRecipient(msg.Channel(), msg.Recipient())

	claimed, err := d.repo.ClaimForDelivery(ctx, msg.ID(), time.Now())
	if err != nil {
		log.Errorw("failed to claim outbound message", "error", err)
		return fmt.Sprintf("%s notification to %s was not sent: %v", msg.Channel(), to, err)
	}
	if !claimed {
		log.Debugw("outbound message already attempted, skipping")
		return ""
	}
	msg.MarkAttempted(time.Now())

	sender, ok := d.senders[msg.Channel()]
	if !ok {
		msg.MarkSkipped("channel not configured")
		d.saveResult(ctx, log, msg)
		return fmt.Sprintf("%s notification to %s was not sent: channel not configured", msg.Channel(), to)
	}

	key := guardKey(msg)
	guarded := false
	if d.guard != nil {
		fresh, err := d.guard.Claim(ctx, key, d.guardTTL)
		switch {
		case err != nil:
			log.Warnw("duplicate guard unavailable, sending anyway", "error", err)
		case !fresh:
			msg.MarkSkipped("identical message sent recently")
			d.saveResult(ctx, log, msg)
			log.Infow("skipped duplicate outbound message", "recipient", to)
			return ""
		default:
			guarded = true
		}
	}

	providerID, err := sender.Send(ctx, msg.Recipient(), msg.Subject(), msg.Body())
	if err != nil {
		if guarded {
			if relErr := d.guard.Release(ctx, key); relErr != nil {
				log.Warnw("failed to release duplicate guard", "error", relErr)
			}
		}
		msg.MarkFailed(err)
		d.saveResult(ctx, log, msg)
		log.Warnw("outbound message failed", "recipient", to, "error", err)
		return fmt.Sprintf("%s notification to %s failed: %v", msg.Channel(), to, err)
	}

	msg.MarkSent(providerID)
	d.saveResult(ctx, log, msg)
	log.Infow("outbound message sent", "recipient", to, "provider_id", providerID)
	return ""
}

func (d *Dispatcher) saveResult(ctx context.Context, log logger.Interface, msg *notification.OutboundMessage) {
	if err := d.repo.UpdateResult(ctx, msg); err != nil {
		log.Errorw("failed to record outbound message result", "status", msg.Status(), "error", err)
	}
}

func guardKey(msg *notification.OutboundMessage) string {
	sum := sha256.Sum256([]byte(msg.Body()))
	return fmt.Sprintf("%s:%s:%s", msg.Channel(), msg.Recipient(), hex.EncodeToString(sum[:8]))
}

func maskRecipient(channel vo.Channel, recipient string) string {
	if channel == vo.ChannelEmail {
		return utils.MaskEmail(recipient)
	}
	return utils.MaskPhone(recipient)
}
