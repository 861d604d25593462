package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// SheetWriter renders one header row plus data rows into a workbook.
type SheetWriter interface {
	Write(sheet string, headers []string, rows [][]any) ([]byte, error)
}

type ExportSparePartOrdersResult struct {
	FileName string
	Content  []byte
	Rows     int
}

type ExportSparePartOrdersUseCase struct {
	orderRepo sparepart.SparePartOrderRepository
	writer    SheetWriter
	logger    logger.Interface
}

func NewExportSparePartOrdersUseCase(
	orderRepo sparepart.SparePartOrderRepository,
	writer SheetWriter,
	logger logger.Interface,
) *ExportSparePartOrdersUseCase {
	return &ExportSparePartOrdersUseCase{orderRepo: orderRepo, writer: writer, logger: logger}
}

var orderExportHeaders = []string{
	"ID", "Servis", "Deo", "Kataloski broj", "Kolicina", "Hitnost",
	"Garancija", "Status", "Dobavljac", "Procenjena cena", "Procenjena isporuka", "Kreirano",
}

// Execute exports every order matching query, ignoring its paging.
func (uc *ExportSparePartOrdersUseCase) Execute(ctx context.Context, p shared.Principal, query ListSparePartOrdersQuery) (*ExportSparePartOrdersResult, error) {
	if !p.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may export orders")
	}

	filter, err := buildOrderFilter(query)
	if err != nil {
		return nil, err
	}
	filter.PageSize = constants.MaxExportRows
	orders, _, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list spare part orders for export", "error", err)
		return nil, errors.NewInternalError("failed to export spare part orders")
	}

	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		var serviceID any
		if o.ServiceID() != nil {
			serviceID = *o.ServiceID()
		}
		var cost any
		if o.EstimatedCost() != nil {
			cost = *o.EstimatedCost()
		}
		delivery := ""
		if o.EstimatedDelivery() != nil {
			delivery = biztime.Format(*o.EstimatedDelivery(), "2006-01-02")
		}
		rows = append(rows, []any{
			o.ID(), serviceID, o.PartName(), o.PartNumber(), o.Quantity(), o.Urgency().String(),
			o.WarrantyStatus().String(), o.Status().String(), o.SupplierName(), cost, delivery,
			biztime.Format(o.CreatedAt(), "2006-01-02 15:04"),
		})
	}

	content, err := uc.writer.Write("Rezervni delovi", orderExportHeaders, rows)
	if err != nil {
		uc.logger.Errorw("failed to render spare part order workbook", "error", err)
		return nil, errors.NewInternalError("failed to export spare part orders")
	}

	uc.logger.Infow("spare part orders exported", "rows", len(rows), "user_id", p.UserID)
	return &ExportSparePartOrdersResult{
		FileName: fmt.Sprintf("rezervni-delovi-%s.xlsx", biztime.Format(biztime.NowUTC(), "20060102")),
		Content:  content,
		Rows:     len(rows),
	}, nil
}
