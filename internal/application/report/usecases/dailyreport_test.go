package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/application/testutil"
	servicevo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	sparepartvo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/shared/services/markdown"
)

type mockMailer struct {
	SendHTMLFunc func(ctx context.Context, to []string, subject, htmlBody string) error
	To           []string
	Subject      string
	Body         string
}

func (m *mockMailer) SendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	m.To, m.Subject, m.Body = to, subject, htmlBody
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

func seedOrder(t *testing.T, fx *testutil.Fixture, serviceID uint, name string) {
	t.Helper()
	order, err := sparepart.NewSparePartOrder(sparepart.NewOrderParams{
		ServiceID:      &serviceID,
		PartName:       name,
		WarrantyStatus: string(sparepartvo.WarrantyIn),
		RequestedBy:    fx.Technician.ID(),
	})
	require.NoError(t, err)
	require.NoError(t, fx.Orders.Create(t.Context(), order))
}

func TestSendDailyReport(t *testing.T) {
	fx := testutil.NewFixture(t)
	svc := fx.SeedService(t, servicevo.StatusWaitingParts)
	fx.SeedService(t, servicevo.StatusInProgress)
	seedOrder(t, fx, svc.ID(), "Kompresor | 220V")
	mailer := &mockMailer{}
	uc := NewSendDailyReportUseCase(fx.Services, fx.Orders, markdown.NewMarkdownService(), mailer, []string{"sef@example.com"}, fx.Logger)

	result, err := uc.Execute(t.Context(), time.Now())

	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Summary.CreatedServices)
	assert.EqualValues(t, 0, result.Summary.CompletedServices)
	assert.EqualValues(t, 1, result.Summary.WaitingParts)
	assert.EqualValues(t, 1, result.Summary.NewOrders)
	assert.EqualValues(t, 1, result.Summary.OpenOrders)
	assert.Equal(t, 1, result.Recipients)
	assert.Contains(t, result.Markdown, `Kompresor \| 220V`)

	assert.Equal(t, []string{"sef@example.com"}, mailer.To)
	assert.Contains(t, mailer.Subject, result.Summary.Date)
	assert.Contains(t, mailer.Body, "<table>")
	assert.Contains(t, mailer.Body, "Kompresor")
}

func TestSendDailyReport_PastDayIsEmpty(t *testing.T) {
	fx := testutil.NewFixture(t)
	fx.SeedService(t, servicevo.StatusInProgress)
	mailer := &mockMailer{}
	uc := NewSendDailyReportUseCase(fx.Services, fx.Orders, markdown.NewMarkdownService(), mailer, []string{"sef@example.com"}, fx.Logger)

	result, err := uc.Execute(t.Context(), time.Now().AddDate(0, 0, -3))

	require.NoError(t, err)
	assert.Zero(t, result.Summary.CreatedServices)
	assert.Contains(t, result.Markdown, "nije bilo novih porudzbina")
}

func TestSendDailyReport_NoRecipients(t *testing.T) {
	fx := testutil.NewFixture(t)
	mailer := &mockMailer{SendHTMLFunc: func(context.Context, []string, string, string) error {
		t.Fatal("mailer must not be called")
		return nil
	}}
	uc := NewSendDailyReportUseCase(fx.Services, fx.Orders, markdown.NewMarkdownService(), mailer, nil, fx.Logger)

	result, err := uc.Execute(t.Context(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, result.Recipients)
	assert.NotEmpty(t, result.Markdown)
}

func TestSendDailyReport_MailerError(t *testing.T) {
	fx := testutil.NewFixture(t)
	mailer := &mockMailer{SendHTMLFunc: func(context.Context, []string, string, string) error {
		return errors.New("smtp down")
	}}
	uc := NewSendDailyReportUseCase(fx.Services, fx.Orders, markdown.NewMarkdownService(), mailer, []string{"a@example.com"}, fx.Logger)

	_, err := uc.Execute(t.Context(), time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}
