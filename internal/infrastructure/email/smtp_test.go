package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func newTestService(d *fakeDialer) *SMTPEmailService {
	svc := NewSMTPEmailService(SMTPConfig{
		Host:        "smtp.local",
		Port:        25,
		FromAddress: "servis@frigo.rs",
		FromName:    "Frigo Servis",
	})
	svc.dialer = d
	return svc
}

func TestSendHTML(t *testing.T) {
	d := &fakeDialer{}
	svc := newTestService(d)

	err := svc.SendHTML(context.Background(), []string{"a@frigo.rs", "b@frigo.rs"}, "Dnevni izvestaj", "<h1>Izvestaj</h1><p>ok</p>")
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"a@frigo.rs", "b@frigo.rs"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Dnevni izvestaj"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Izvestajok")
}

func TestSendHTML_NoRecipients(t *testing.T) {
	svc := newTestService(&fakeDialer{})
	assert.Error(t, svc.SendHTML(context.Background(), nil, "s", "b"))
}

func TestSend_ReturnsMessageID(t *testing.T) {
	d := &fakeDialer{}
	svc := newTestService(d)

	id, err := svc.Send(context.Background(), "klijent@example.com", "Servis zavrsen", "Vas uredjaj je spreman.")
	require.NoError(t, err)
	assert.Contains(t, id, "@frigo.rs>")
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{id}, d.sent[0].GetHeader("Message-ID"))
}

func TestSend_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := newTestService(&fakeDialer{})
		svc.config.Host = ""
		_, err := svc.Send(context.Background(), "x@example.com", "s", "b")
		assert.ErrorIs(t, err, ErrEmailServiceNotConfigured)
	})

	t.Run("dial failure", func(t *testing.T) {
		svc := newTestService(&fakeDialer{err: errors.New("connection refused")})
		_, err := svc.Send(context.Background(), "x@example.com", "s", "b")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("cancelled context", func(t *testing.T) {
		d := &fakeDialer{}
		svc := newTestService(d)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Send(ctx, "x@example.com", "s", "b")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, d.sent)
	})
}
