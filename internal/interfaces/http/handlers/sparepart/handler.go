// Package sparepart serves spare-part order intake and administration.
package sparepart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/application/sparepart/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type createOrderExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateSparePartOrderCommand) (*usecases.CreateSparePartOrderResult, error)
}

type getOrderExecutor interface {
	Execute(ctx context.Context, p shared.Principal, orderID uint) (*dto.SparePartOrderDTO, error)
}

type listOrdersExecutor interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListSparePartOrdersQuery) (*usecases.ListSparePartOrdersResult, error)
}

type listServiceOrdersExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.SparePartOrderDTO, error)
}

type updateOrderExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.UpdateSparePartOrderCommand) (*usecases.UpdateSparePartOrderResult, error)
}

type exportOrdersExecutor interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListSparePartOrdersQuery) (*usecases.ExportSparePartOrdersResult, error)
}

type Handler struct {
	createUC      createOrderExecutor
	getUC         getOrderExecutor
	listUC        listOrdersExecutor
	listServiceUC listServiceOrdersExecutor
	updateUC      updateOrderExecutor
	exportUC      exportOrdersExecutor
	logger        logger.Interface
}

func NewHandler(
	createUC createOrderExecutor,
	getUC getOrderExecutor,
	listUC listOrdersExecutor,
	listServiceUC listServiceOrdersExecutor,
	updateUC updateOrderExecutor,
	exportUC exportOrdersExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC:      createUC,
		getUC:         getUC,
		listUC:        listUC,
		listServiceUC: listServiceUC,
		updateUC:      updateUC,
		exportUC:      exportUC,
		logger:        logger,
	}
}

// CreateOrder handles POST /spare-parts
// @Summary Request a spare part
// @Description Creates a pending order. An order tied to a service moves it to waiting_parts.
// @Tags spare-parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param order body CreateSparePartOrderRequest true "Order data"
// @Success 201 {object} utils.APIResponse{data=OrderResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /spare-parts [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateSparePartOrderRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create spare part order", "user_id", p.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), p, req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, OrderResponse{
		Order:         result.Order,
		ServiceStatus: result.ServiceStatus,
		Warnings:      common.Warnings(result.Warnings),
	}, "Spare part order created successfully")
}

// GetOrder handles GET /spare-parts/:id
// @Summary Get a spare part order
// @Tags spare-parts
// @Produce json
// @Security Bearer
// @Param id path int true "Order ID"
// @Success 200 {object} utils.APIResponse{data=dto.SparePartOrderDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /spare-parts/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	orderID, err := utils.ParseIDParam(c, "id", "spare part order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), p, orderID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListOrders handles GET /admin/spare-parts
// @Summary List spare part orders
// @Tags spare-parts
// @Produce json
// @Security Bearer
// @Param status query string false "pending, ordered, delivered or cancelled"
// @Param urgency query string false "low, normal, high or urgent"
// @Param service_id query int false "Owning service"
// @Param date_from query string false "First creation day (YYYY-MM-DD)"
// @Param date_to query string false "Last creation day (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /admin/spare-parts [get]
func (h *Handler) ListOrders(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	query, err := parseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), p, query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Orders, result.Total, result.Page, result.PageSize)
}

// ListServiceOrders handles GET /services/:id/spare-parts
// @Summary List the spare part orders of one service
// @Tags spare-parts
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.SparePartOrderDTO}
// @Router /services/{id}/spare-parts [get]
func (h *Handler) ListServiceOrders(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	serviceID, err := utils.ParseIDParam(c, "id", "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listServiceUC.Execute(c.Request.Context(), p, serviceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateOrder handles PUT /admin/spare-parts/:id
// @Summary Update a spare part order
// @Description Delivered and cancelled orders may return the owning service to in_progress.
// @Tags spare-parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Order ID"
// @Param order body UpdateSparePartOrderRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse{data=OrderResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/spare-parts/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	orderID, err := utils.ParseIDParam(c, "id", "spare part order")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSparePartOrderRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update spare part order", "order_id", orderID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd, err := req.ToCommand(orderID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), p, cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Spare part order updated successfully", OrderResponse{
		Order:         result.Order,
		ServiceStatus: result.ServiceStatus,
		Warnings:      common.Warnings(result.Warnings),
	})
}

// ExportOrders handles GET /admin/spare-parts/export
// @Summary Export spare part orders as xlsx
// @Tags spare-parts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param status query string false "Status filter"
// @Param date_from query string false "First creation day (YYYY-MM-DD)"
// @Param date_to query string false "Last creation day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /admin/spare-parts/export [get]
func (h *Handler) ExportOrders(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	query, err := parseListQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.exportUC.Execute(c.Request.Context(), p, query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("spare part orders exported", "user_id", p.UserID, "rows", result.Rows)
	utils.FileResponse(c, result.FileName, constants.ContentTypeXLSX, result.Content)
}
