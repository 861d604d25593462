// Package client serves the client and appliance registries.
package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/client/dto"
	"github.com/frigoservis/servis/internal/application/client/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type createClientExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateClientCommand) (*dto.ClientDTO, error)
}

type getClientExecutor interface {
	Execute(ctx context.Context, p shared.Principal, clientID uint) (*dto.ClientDTO, error)
}

type listClientsExecutor interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListClientsQuery) (*usecases.ListClientsResult, error)
}

type addApplianceExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.AddApplianceCommand) (*dto.ApplianceDTO, error)
}

type listAppliancesExecutor interface {
	Execute(ctx context.Context, p shared.Principal, clientID uint) ([]*dto.ApplianceDTO, error)
}

type CreateClientRequest struct {
	FullName string `json:"full_name" validate:"required,max=200" example:"Marko Petrović"`
	Phone    string `json:"phone" validate:"max=30" example:"+381641234567"`
	Email    string `json:"email" validate:"omitempty,email,max=200"`
	Address  string `json:"address" validate:"max=300"`
	City     string `json:"city" validate:"max=100" example:"Beograd"`
}

type AddApplianceRequest struct {
	DeviceType   string `json:"device_type" validate:"required,max=100" example:"frižider"`
	Manufacturer string `json:"manufacturer" validate:"max=100" example:"Gorenje"`
	Model        string `json:"model" validate:"max=100"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
}

type Handler struct {
	createUC         createClientExecutor
	getUC            getClientExecutor
	listUC           listClientsExecutor
	addApplianceUC   addApplianceExecutor
	listAppliancesUC listAppliancesExecutor
	logger           logger.Interface
}

func NewHandler(
	createUC createClientExecutor,
	getUC getClientExecutor,
	listUC listClientsExecutor,
	addApplianceUC addApplianceExecutor,
	listAppliancesUC listAppliancesExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC:         createUC,
		getUC:            getUC,
		listUC:           listUC,
		addApplianceUC:   addApplianceUC,
		listAppliancesUC: listAppliancesUC,
		logger:           logger,
	}
}

// CreateClient handles POST /admin/clients
// @Summary Register a client
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param client body CreateClientRequest true "Client data"
// @Success 201 {object} utils.APIResponse{data=dto.ClientDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /admin/clients [post]
func (h *Handler) CreateClient(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateClientRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create client", "user_id", p.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := utils.ValidatePhone("phone", req.Phone); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), p, usecases.CreateClientCommand{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		City:     req.City,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

// ListClients handles GET /admin/clients
// @Summary List clients
// @Tags clients
// @Produce json
// @Security Bearer
// @Param search query string false "Name or phone fragment"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /admin/clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), p, usecases.ListClientsQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Clients, result.Total, result.Page, result.PageSize)
}

// GetClient handles GET /admin/clients/:id
// @Summary Get a client
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path int true "Client ID"
// @Success 200 {object} utils.APIResponse{data=dto.ClientDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/clients/{id} [get]
func (h *Handler) GetClient(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	clientID, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), p, clientID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddAppliance handles POST /admin/clients/:id/appliances
// @Summary Register an appliance for a client
// @Tags clients
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Client ID"
// @Param appliance body AddApplianceRequest true "Appliance data"
// @Success 201 {object} utils.APIResponse{data=dto.ApplianceDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /admin/clients/{id}/appliances [post]
func (h *Handler) AddAppliance(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	clientID, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddApplianceRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addApplianceUC.Execute(c.Request.Context(), p, usecases.AddApplianceCommand{
		ClientID:     clientID,
		DeviceType:   req.DeviceType,
		Manufacturer: req.Manufacturer,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Appliance added successfully")
}

// ListAppliances handles GET /admin/clients/:id/appliances
// @Summary List the appliances of a client
// @Tags clients
// @Produce json
// @Security Bearer
// @Param id path int true "Client ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.ApplianceDTO}
// @Router /admin/clients/{id}/appliances [get]
func (h *Handler) ListAppliances(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	clientID, err := utils.ParseIDParam(c, "id", "client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listAppliancesUC.Execute(c.Request.Context(), p, clientID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
