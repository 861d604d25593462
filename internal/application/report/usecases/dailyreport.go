package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frigoservis/servis/internal/domain/service"
	servicevo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	sparepartvo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// maxListedOrders caps the order table in one report.
const maxListedOrders = 50

// HTMLRenderer turns markdown into a sanitized HTML document.
type HTMLRenderer interface {
	Document(title, markdown string) (string, error)
}

// ReportMailer sends one HTML message to several recipients.
type ReportMailer interface {
	SendHTML(ctx context.Context, to []string, subject, htmlBody string) error
}

// DailySummary is the data behind one daily report.
type DailySummary struct {
	Date               string
	CreatedServices    int64
	CompletedServices  int64
	WaitingParts       int64
	DevicePartsRemoved int64
	NewOrders          int64
	OpenOrders         int64
	Orders             []*sparepart.SparePartOrder
}

type SendDailyReportResult struct {
	Summary    *DailySummary
	Markdown   string
	Recipients int
}

type SendDailyReportUseCase struct {
	serviceRepo service.ServiceRepository
	orderRepo   sparepart.SparePartOrderRepository
	renderer    HTMLRenderer
	mailer      ReportMailer
	recipients  []string
	logger      logger.Interface
}

func NewSendDailyReportUseCase(
	serviceRepo service.ServiceRepository,
	orderRepo sparepart.SparePartOrderRepository,
	renderer HTMLRenderer,
	mailer ReportMailer,
	recipients []string,
	logger logger.Interface,
) *SendDailyReportUseCase {
	return &SendDailyReportUseCase{
		serviceRepo: serviceRepo,
		orderRepo:   orderRepo,
		renderer:    renderer,
		mailer:      mailer,
		recipients:  recipients,
		logger:      logger,
	}
}

// Execute gathers the figures of the business day containing day and mails
// them to the configured recipients. With no recipients the report is built
// but not sent.
func (uc *SendDailyReportUseCase) Execute(ctx context.Context, day time.Time) (*SendDailyReportResult, error) {
	start, end := biztime.DayBoundsUTC(day)
	date := biztime.Format(start, time.DateOnly)
	uc.logger.Infow("executing send daily report use case", "date", date, "recipients", len(uc.recipients))

	summary, err := uc.gatherDailyStats(ctx, date, start, end)
	if err != nil {
		uc.logger.Errorw("failed to gather daily stats", "date", date, "error", err)
		return nil, fmt.Errorf("failed to gather stats: %w", err)
	}

	markdown := buildDailyReportMarkdown(summary)
	result := &SendDailyReportResult{Summary: summary, Markdown: markdown}

	if len(uc.recipients) == 0 {
		uc.logger.Warnw("daily report not sent: no recipients configured", "date", date)
		return result, nil
	}

	title := fmt.Sprintf("Dnevni izvestaj %s", date)
	html, err := uc.renderer.Document(title, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	if err := uc.mailer.SendHTML(ctx, uc.recipients, title, html); err != nil {
		uc.logger.Errorw("failed to send daily report", "date", date, "error", err)
		return nil, fmt.Errorf("failed to send report: %w", err)
	}

	result.Recipients = len(uc.recipients)
	uc.logger.Infow("daily report sent",
		"date", date,
		"created_services", summary.CreatedServices,
		"completed_services", summary.CompletedServices,
		"new_orders", summary.NewOrders)
	return result, nil
}

func (uc *SendDailyReportUseCase) gatherDailyStats(ctx context.Context, date string, start, end time.Time) (*DailySummary, error) {
	summary := &DailySummary{Date: date}
	var pendingOrders, orderedOrders int64

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, total, err := uc.serviceRepo.List(gctx, service.ServiceFilter{
			CreatedFrom: &start, CreatedTo: &end, Page: 1, PageSize: 1,
		})
		summary.CreatedServices = total
		return err
	})

	g.Go(func() error {
		_, total, err := uc.serviceRepo.List(gctx, service.ServiceFilter{
			CompletedFrom: &start, CompletedTo: &end, Page: 1, PageSize: 1,
		})
		summary.CompletedServices = total
		return err
	})

	g.Go(func() error {
		count, err := uc.serviceRepo.CountByStatus(gctx, servicevo.StatusWaitingParts)
		summary.WaitingParts = count
		return err
	})

	g.Go(func() error {
		count, err := uc.serviceRepo.CountByStatus(gctx, servicevo.StatusDevicePartsRemoved)
		summary.DevicePartsRemoved = count
		return err
	})

	g.Go(func() error {
		orders, total, err := uc.orderRepo.List(gctx, sparepart.OrderFilter{
			CreatedFrom: &start, CreatedTo: &end, Page: 1, PageSize: maxListedOrders,
		})
		summary.Orders, summary.NewOrders = orders, total
		return err
	})

	g.Go(func() error {
		status := sparepartvo.OrderStatusPending
		_, total, err := uc.orderRepo.List(gctx, sparepart.OrderFilter{Status: &status, Page: 1, PageSize: 1})
		pendingOrders = total
		return err
	})

	g.Go(func() error {
		status := sparepartvo.OrderStatusOrdered
		_, total, err := uc.orderRepo.List(gctx, sparepart.OrderFilter{Status: &status, Page: 1, PageSize: 1})
		orderedOrders = total
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.OpenOrders = pendingOrders + orderedOrders
	return summary, nil
}

func buildDailyReportMarkdown(s *DailySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dnevni izvestaj za %s\n\n", s.Date)
	b.WriteString("| Stavka | Broj |\n|---|---|\n")
	fmt.Fprintf(&b, "| Novi servisi | %d |\n", s.CreatedServices)
	fmt.Fprintf(&b, "| Zavrseni servisi | %d |\n", s.CompletedServices)
	fmt.Fprintf(&b, "| Ceka delove | %d |\n", s.WaitingParts)
	fmt.Fprintf(&b, "| Delovi uklonjeni sa uredjaja | %d |\n", s.DevicePartsRemoved)
	fmt.Fprintf(&b, "| Nove porudzbine delova | %d |\n", s.NewOrders)
	fmt.Fprintf(&b, "| Otvorene porudzbine | %d |\n", s.OpenOrders)

	if len(s.Orders) == 0 {
		b.WriteString("\nDanas nije bilo novih porudzbina.\n")
		return b.String()
	}

	b.WriteString("\n## Porudzbine rezervnih delova\n\n")
	b.WriteString("| # | Servis | Deo | Kolicina | Hitnost | Status |\n|---|---|---|---|---|---|\n")
	for _, o := range s.Orders {
		serviceRef := "-"
		if o.ServiceID() != nil {
			serviceRef = fmt.Sprintf("#%d", *o.ServiceID())
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s |\n",
			o.ID(), serviceRef, escapeCell(o.PartName()), o.Quantity(), o.Urgency(), o.Status())
	}
	if s.NewOrders > int64(len(s.Orders)) {
		fmt.Fprintf(&b, "\n... i jos %d\n", s.NewOrders-int64(len(s.Orders)))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
