// Package notification plans and dispatches the notices produced by service
// status transitions.
package notification

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frigoservis/servis/internal/domain/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
)

// Template is the text set for one notification type. Placeholders such as
// {clientName} are replaced verbatim.
type Template struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Subject string `yaml:"subject"`
	SMS     string `yaml:"sms"`
}

type TemplateSource interface {
	Template(t vo.NotificationType) (Template, bool)
}

// ChannelPolicy selects which client channels are enabled.
type ChannelPolicy struct {
	SMS         bool
	WhatsApp    bool
	Email       bool
	CompanyName string
}

// Transition is everything the planner needs to know about one applied event.
type Transition struct {
	Type           vo.NotificationType
	ServiceID      uint
	OldStatus      string
	NewStatus      string
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	DeviceType     string
	TechnicianID   *uint
	TechnicianName string
	PartName       string
	Cost           *float64
	InitiatorID    uint
	AdminIDs       []uint
}

// Plan is the fan-out of one transition.
type Plan struct {
	Notifications []*notification.Notification
	Messages      []*notification.OutboundMessage
}

func (p *Plan) IsEmpty() bool {
	return p == nil || (len(p.Notifications) == 0 && len(p.Messages) == 0)
}

// Planner turns a transition into dashboard notices and outbound messages.
// It performs no I/O.
type Planner struct {
	templates TemplateSource
	policy    ChannelPolicy
}

func NewPlanner(templates TemplateSource, policy ChannelPolicy) *Planner {
	return &Planner{templates: templates, policy: policy}
}

func (p *Planner) Plan(tr Transition) (*Plan, error) {
	tmpl, ok := p.templates.Template(tr.Type)
	if !ok {
		return nil, fmt.Errorf("no message template for notification type %s", tr.Type)
	}

	r := p.replacer(tr)
	title := r.Replace(tmpl.Title)
	message := r.Replace(tmpl.Message)
	serviceID := tr.ServiceID

	plan := &Plan{}
	seen := make(map[uint]bool)
	addNotice := func(recipientID uint) error {
		if recipientID == 0 || seen[recipientID] {
			return nil
		}
		seen[recipientID] = true
		n, err := notification.NewNotification(recipientID, tr.Type, title, message, &serviceID)
		if err != nil {
			return err
		}
		plan.Notifications = append(plan.Notifications, n)
		return nil
	}

	for _, adminID := range tr.AdminIDs {
		if err := addNotice(adminID); err != nil {
			return nil, err
		}
	}

	if tr.TechnicianID != nil && *tr.TechnicianID != tr.InitiatorID {
		if err := addNotice(*tr.TechnicianID); err != nil {
			return nil, err
		}
	}

	if !tr.Type.IsClientFacing() {
		return plan, nil
	}

	short := r.Replace(tmpl.SMS)
	if short == "" {
		short = message
	}
	subject := r.Replace(tmpl.Subject)
	if subject == "" {
		subject = title
	}

	type outbound struct {
		enabled bool
		channel vo.Channel
		to      string
		subject string
		body    string
	}
	candidates := []outbound{
		{p.policy.SMS, vo.ChannelSMS, tr.ClientPhone, "", short},
		{p.policy.WhatsApp, vo.ChannelWhatsApp, tr.ClientPhone, "", short},
		{p.policy.Email, vo.ChannelEmail, tr.ClientEmail, subject, message},
	}
	for _, c := range candidates {
		if !c.enabled || strings.TrimSpace(c.to) == "" {
			continue
		}
		msg, err := notification.NewOutboundMessage(c.channel, c.to, c.subject, c.body, &serviceID)
		if err != nil {
			return nil, err
		}
		plan.Messages = append(plan.Messages, msg)
	}

	return plan, nil
}

func (p *Planner) replacer(tr Transition) *strings.Replacer {
	cost := ""
	if tr.Cost != nil {
		cost = strconv.FormatFloat(*tr.Cost, 'f', 2, 64)
	}
	return strings.NewReplacer(
		"{clientName}", tr.ClientName,
		"{deviceType}", tr.DeviceType,
		"{serviceId}", strconv.FormatUint(uint64(tr.ServiceID), 10),
		"{partName}", tr.PartName,
		"{status}", tr.NewStatus,
		"{oldStatus}", tr.OldStatus,
		"{technicianName}", tr.TechnicianName,
		"{companyName}", p.policy.CompanyName,
		"{cost}", cost,
	)
}
