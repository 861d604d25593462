package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type ExportServicesResult struct {
	FileName string
	Content  []byte
	Rows     int
}

type ExportServicesUseCase struct {
	serviceRepo   service.ServiceRepository
	clientRepo    client.ClientRepository
	applianceRepo client.ApplianceRepository
	writer        SheetWriter
	logger        logger.Interface
}

func NewExportServicesUseCase(
	serviceRepo service.ServiceRepository,
	clientRepo client.ClientRepository,
	applianceRepo client.ApplianceRepository,
	writer SheetWriter,
	logger logger.Interface,
) *ExportServicesUseCase {
	return &ExportServicesUseCase{
		serviceRepo:   serviceRepo,
		clientRepo:    clientRepo,
		applianceRepo: applianceRepo,
		writer:        writer,
		logger:        logger,
	}
}

var serviceExportHeaders = []string{
	"ID", "Klijent", "Telefon", "Uredjaj", "Status", "Opis", "Napomena servisera",
	"Cena", "Zavrseno", "Potpuno popravljeno", "Kreirano",
}

func (uc *ExportServicesUseCase) Execute(ctx context.Context, p shared.Principal, query ListServicesQuery) (*ExportServicesResult, error) {
	if !p.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may export services")
	}
	filter, err := buildServiceFilter(p, query)
	if err != nil {
		return nil, err
	}
	filter.PageSize = constants.MaxExportRows

	services, _, err := uc.serviceRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list services for export", "error", err)
		return nil, errors.NewInternalError("failed to export services")
	}

	clients := make(map[uint]*client.Client)
	rows := make([][]any, 0, len(services))
	for _, s := range services {
		c, ok := clients[s.ClientID()]
		if !ok {
			if c, err = uc.clientRepo.GetByID(ctx, s.ClientID()); err != nil {
				uc.logger.Errorw("failed to load client for export", "client_id", s.ClientID(), "error", err)
				return nil, errors.NewInternalError("failed to export services")
			}
			clients[s.ClientID()] = c
		}
		name, phone := "", ""
		if c != nil {
			name, phone = c.FullName(), c.Phone()
		}

		device := ""
		if a, err := uc.applianceRepo.GetByID(ctx, s.ApplianceID()); err == nil && a != nil {
			device = a.Label()
		}

		var cost any
		if s.Cost() != nil {
			cost = *s.Cost()
		}
		completed := ""
		if s.CompletedDate() != nil {
			completed = biztime.Format(*s.CompletedDate(), "2006-01-02")
		}
		fixed := "ne"
		if s.IsCompletelyFixed() {
			fixed = "da"
		}

		rows = append(rows, []any{
			s.ID(), name, phone, device, s.Status().String(), s.Description(), s.TechnicianNotes(),
			cost, completed, fixed, biztime.Format(s.CreatedAt(), "2006-01-02 15:04"),
		})
	}

	content, err := uc.writer.Write("Servisi", serviceExportHeaders, rows)
	if err != nil {
		uc.logger.Errorw("failed to render service workbook", "error", err)
		return nil, errors.NewInternalError("failed to export services")
	}

	uc.logger.Infow("services exported", "rows", len(rows), "user_id", p.UserID)
	return &ExportServicesResult{
		FileName: fmt.Sprintf("servisi-%s.xlsx", biztime.Format(biztime.NowUTC(), "20060102")),
		Content:  content,
		Rows:     len(rows),
	}, nil
}
