// Package template loads the message texts used for notifications.
package template

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frigoservis/servis/internal/application/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/shared/logger"
)

//go:embed messages.yaml
var defaultMessages []byte

// MessageTemplateLoader serves notification texts from the embedded defaults,
// optionally overridden field by field from a YAML file on disk.
type MessageTemplateLoader struct {
	templates map[vo.NotificationType]notification.Template
	path      string
	logger    logger.Interface
}

// NewMessageTemplateLoader creates a loader. An empty path uses only the built-in texts.
func NewMessageTemplateLoader(path string, logger logger.Interface) *MessageTemplateLoader {
	return &MessageTemplateLoader{
		templates: make(map[vo.NotificationType]notification.Template),
		path:      path,
		logger:    logger,
	}
}

// Load parses the built-in texts, applies overrides and checks every type has a title and message.
func (l *MessageTemplateLoader) Load() error {
	base, err := parseMessages(defaultMessages)
	if err != nil {
		return fmt.Errorf("failed to parse built-in message templates: %w", err)
	}

	if l.path != "" {
		content, err := os.ReadFile(l.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			l.logger.Warnw("message template override not found, using built-in texts", "path", l.path)
		case err != nil:
			return fmt.Errorf("failed to read message templates %s: %w", l.path, err)
		default:
			overrides, err := parseMessages(content)
			if err != nil {
				return fmt.Errorf("failed to parse message templates %s: %w", l.path, err)
			}
			for t, o := range overrides {
				base[t] = merge(base[t], o)
			}
			l.logger.Infow("loaded message template overrides", "path", l.path, "count", len(overrides))
		}
	}

	for _, t := range vo.NotificationTypes() {
		tmpl, ok := base[t]
		if !ok || tmpl.Title == "" || tmpl.Message == "" {
			return fmt.Errorf("message template %s needs a title and a message", t)
		}
	}

	l.templates = base
	return nil
}

// Template implements notification.TemplateSource.
func (l *MessageTemplateLoader) Template(t vo.NotificationType) (notification.Template, bool) {
	tmpl, ok := l.templates[t]
	return tmpl, ok
}

func parseMessages(content []byte) (map[vo.NotificationType]notification.Template, error) {
	raw := make(map[string]notification.Template)
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}
	out := make(map[vo.NotificationType]notification.Template, len(raw))
	for key, tmpl := range raw {
		t := vo.NotificationType(key)
		if !t.IsValid() {
			return nil, fmt.Errorf("unknown notification type %q", key)
		}
		out[t] = tmpl
	}
	return out, nil
}

func merge(base, override notification.Template) notification.Template {
	if override.Title != "" {
		base.Title = override.Title
	}
	if override.Message != "" {
		base.Message = override.Message
	}
	if override.Subject != "" {
		base.Subject = override.Subject
	}
	if override.SMS != "" {
		base.SMS = override.SMS
	}
	return base
}
