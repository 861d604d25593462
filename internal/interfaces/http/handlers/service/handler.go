// Package service serves the service registry and the status actions that run
// through the coordinator.
package service

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/application/service/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type createServiceExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateServiceCommand) (*dto.ServiceDTO, error)
}

type getServiceExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint) (*dto.ServiceDTO, error)
}

type listServicesExecutor interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListServicesQuery) (*usecases.ListServicesResult, error)
}

type historyExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.StatusHistoryDTO, error)
}

type deleteServiceExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint) error
}

type exportServicesExecutor interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListServicesQuery) (*usecases.ExportServicesResult, error)
}

type assignExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID, technicianID uint) (*usecases.ServiceActionResult, error)
}

type changeStatusExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.ChangeServiceStatusCommand) (*usecases.ServiceActionResult, error)
}

type completeExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CompleteServiceCommand) (*usecases.ServiceActionResult, error)
}

type returnFromWaitingExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.ReturnFromWaitingCommand) (*usecases.ServiceActionResult, error)
}

// noteActionExecutor covers deliver and remind.
type noteActionExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint, note string) (*usecases.ServiceActionResult, error)
}

// UseCases groups the service use cases the handler depends on.
type UseCases struct {
	Create            createServiceExecutor
	Get               getServiceExecutor
	List              listServicesExecutor
	History           historyExecutor
	Delete            deleteServiceExecutor
	Export            exportServicesExecutor
	Assign            assignExecutor
	ChangeStatus      changeStatusExecutor
	Complete          completeExecutor
	Deliver           noteActionExecutor
	ReturnFromWaiting returnFromWaitingExecutor
	Remind            noteActionExecutor
}

type Handler struct {
	uc     UseCases
	logger logger.Interface
}

func NewHandler(uc UseCases, logger logger.Interface) *Handler {
	return &Handler{uc: uc, logger: logger}
}

// CreateService handles POST /services
// @Summary Open a service request
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param service body CreateServiceRequest true "Service data"
// @Success 201 {object} utils.APIResponse{data=dto.ServiceDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /services [post]
func (h *Handler) CreateService(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateServiceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create service", "user_id", p.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), p, usecases.CreateServiceCommand{
		ClientID:    req.ClientID,
		ApplianceID: req.ApplianceID,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service created successfully")
}

// ListServices handles GET /services
// @Summary List services visible to the caller
// @Tags services
// @Produce json
// @Security Bearer
// @Param status query string false "Service status"
// @Param technician_id query int false "Assigned technician"
// @Param client_id query int false "Client"
// @Param date_from query string false "First creation day (YYYY-MM-DD)"
// @Param date_to query string false "Last creation day (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /services [get]
func (h *Handler) ListServices(c *gin.Context) {
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

	result, err := h.uc.List.Execute(c.Request.Context(), p, query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Services, result.Total, result.Page, result.PageSize)
}

// GetService handles GET /services/:id
// @Summary Get a service
// @Tags services
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 200 {object} utils.APIResponse{data=dto.ServiceDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /services/{id} [get]
func (h *Handler) GetService(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), p, serviceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetHistory handles GET /services/:id/history
// @Summary Status audit trail of a service
// @Tags services
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.StatusHistoryDTO}
// @Router /services/{id}/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	result, err := h.uc.History.Execute(c.Request.Context(), p, serviceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AssignTechnician handles POST /admin/services/:id/assign
// @Summary Assign a technician
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body AssignTechnicianRequest true "Technician"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /admin/services/{id}/assign [post]
func (h *Handler) AssignTechnician(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req AssignTechnicianRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Assign.Execute(c.Request.Context(), p, serviceID, req.TechnicianID)
	h.respondAction(c, result, err, "Technician assigned successfully")
}

// ChangeStatus handles PATCH /services/:id/status
// @Summary Change the status of a service
// @Description Only transitions allowed by the service state machine are accepted.
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /services/{id}/status [patch]
func (h *Handler) ChangeStatus(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ChangeStatus.Execute(c.Request.Context(), p, usecases.ChangeServiceStatusCommand{
		ServiceID: serviceID,
		Status:    req.Status,
		Note:      req.Note,
	})
	h.respondAction(c, result, err, "Service status updated successfully")
}

// CompleteService handles POST /services/:id/complete
// @Summary Complete a service
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body CompleteServiceRequest false "Completion data"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /services/{id}/complete [post]
func (h *Handler) CompleteService(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req CompleteServiceRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Complete.Execute(c.Request.Context(), p, usecases.CompleteServiceCommand{
		ServiceID:         serviceID,
		Cost:              req.Cost,
		TechnicianNotes:   req.TechnicianNotes,
		IsCompletelyFixed: req.IsCompletelyFixed,
	})
	h.respondAction(c, result, err, "Service completed successfully")
}

// DeliverService handles POST /admin/services/:id/deliver
// @Summary Mark a completed service delivered
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body NoteRequest false "Optional note"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /admin/services/{id}/deliver [post]
func (h *Handler) DeliverService(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Deliver.Execute(c.Request.Context(), p, serviceID, req.Note)
	h.respondAction(c, result, err, "Service delivered successfully")
}

// ReturnFromWaiting handles POST /admin/services/:id/return-from-waiting
// @Summary Return a waiting service to in_progress
// @Description Refused while spare-part orders are open unless force is set.
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body ReturnFromWaitingRequest false "Options"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /admin/services/{id}/return-from-waiting [post]
func (h *Handler) ReturnFromWaiting(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req ReturnFromWaitingRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.ReturnFromWaiting.Execute(c.Request.Context(), p, usecases.ReturnFromWaitingCommand{
		ServiceID: serviceID,
		Force:     req.Force,
		Note:      req.Note,
	})
	h.respondAction(c, result, err, "Service returned to work")
}

// SendReminder handles POST /admin/services/:id/remind
// @Summary Send an appointment reminder to the client
// @Tags services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body NoteRequest false "Optional note"
// @Success 200 {object} utils.APIResponse{data=ActionResponse}
// @Router /admin/services/{id}/remind [post]
func (h *Handler) SendReminder(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Remind.Execute(c.Request.Context(), p, serviceID, req.Note)
	h.respondAction(c, result, err, "Reminder sent")
}

// DeleteService handles DELETE /admin/services/:id
// @Summary Delete a service
// @Description Refused while spare part orders or removed parts reference the service.
// @Tags services
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/services/{id} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	p, serviceID, ok := h.principalAndID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), p, serviceID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("service deleted", "service_id", serviceID, "user_id", p.UserID)
	utils.NoContentResponse(c)
}

// ExportServices handles GET /admin/services/export
// @Summary Export services as xlsx
// @Tags services
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Param status query string false "Service status"
// @Param date_from query string false "First creation day (YYYY-MM-DD)"
// @Param date_to query string false "Last creation day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /admin/services/export [get]
func (h *Handler) ExportServices(c *gin.Context) {
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

	result, err := h.uc.Export.Execute(c.Request.Context(), p, query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("services exported", "user_id", p.UserID, "rows", result.Rows)
	utils.FileResponse(c, result.FileName, constants.ContentTypeXLSX, result.Content)
}

func (h *Handler) principalAndID(c *gin.Context) (shared.Principal, uint, bool) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return shared.Principal{}, 0, false
	}
	serviceID, err := utils.ParseIDParam(c, "id", "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return shared.Principal{}, 0, false
	}
	return p, serviceID, true
}

func (h *Handler) respondAction(c *gin.Context, result *usecases.ServiceActionResult, err error, message string) {
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if len(result.Warnings) > 0 {
		h.logger.Warnw("service action finished with delivery warnings",
			"service_id", result.Service.ID,
			"warnings", len(result.Warnings),
		)
	}
	utils.SuccessResponse(c, http.StatusOK, message, toActionResponse(result))
}
