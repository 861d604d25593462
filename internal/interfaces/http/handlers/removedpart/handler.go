// Package removedpart serves parts taken off devices for workshop repair.
package removedpart

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/removedpart/dto"
	"github.com/frigoservis/servis/internal/application/removedpart/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type createPartExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateRemovedPartCommand) (*usecases.CreateRemovedPartResult, error)
}

type returnPartExecutor interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.ReturnRemovedPartCommand) (*usecases.ReturnRemovedPartResult, error)
}

type markRemovedExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint, note string) (*usecases.MarkPartsRemovedResult, error)
}

type listPartsExecutor interface {
	Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.RemovedPartDTO, error)
}

type Handler struct {
	createUC      createPartExecutor
	returnUC      returnPartExecutor
	markRemovedUC markRemovedExecutor
	listUC        listPartsExecutor
	logger        logger.Interface
}

func NewHandler(
	createUC createPartExecutor,
	returnUC returnPartExecutor,
	markRemovedUC markRemovedExecutor,
	listUC listPartsExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		createUC:      createUC,
		returnUC:      returnUC,
		markRemovedUC: markRemovedUC,
		listUC:        listUC,
		logger:        logger,
	}
}

// CreatePart handles POST /removed-parts
// @Summary Record a part removed from a device
// @Description Moves the owning service to device_parts_removed.
// @Tags removed-parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param part body CreateRemovedPartRequest true "Removed part"
// @Success 201 {object} utils.APIResponse{data=PartResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /removed-parts [post]
func (h *Handler) CreatePart(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateRemovedPartRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create removed part", "user_id", p.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), p, cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, PartResponse{
		Part:          result.Part,
		ServiceStatus: result.ServiceStatus,
		Warnings:      common.Warnings(result.Warnings),
	}, "Removed part recorded successfully")
}

// ReturnPart handles PATCH /removed-parts/:id/return
// @Summary Mark a removed part returned to the device
// @Tags removed-parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Removed part ID"
// @Param body body ReturnRemovedPartRequest false "Return data"
// @Success 200 {object} utils.APIResponse{data=PartResponse}
// @Failure 409 {object} utils.APIResponse
// @Router /removed-parts/{id}/return [patch]
func (h *Handler) ReturnPart(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	partID, err := utils.ParseIDParam(c, "id", "removed part")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReturnRemovedPartRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}
	returnedAt, err := common.ParseTime("returned_at", req.ReturnedAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.returnUC.Execute(c.Request.Context(), p, usecases.ReturnRemovedPartCommand{
		PartID:     partID,
		ReturnedAt: returnedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Removed part returned successfully", PartResponse{
		Part:          result.Part,
		ServiceStatus: result.ServiceStatus,
		Warnings:      common.Warnings(result.Warnings),
	})
}

// MarkPartsRemoved handles PATCH /services/:id/parts-removed
// @Summary Move a service to device_parts_removed
// @Description Deprecated. Use POST /removed-parts. Records an "unspecified part" when no removed part is out.
// @Tags removed-parts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param body body MarkPartsRemovedRequest false "Optional note"
// @Success 200 {object} utils.APIResponse{data=MarkPartsRemovedResponse}
// @Failure 409 {object} utils.APIResponse
// @Deprecated
// @Router /services/{id}/parts-removed [patch]
func (h *Handler) MarkPartsRemoved(c *gin.Context) {
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

	var req MarkPartsRemovedRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.markRemovedUC.Execute(c.Request.Context(), p, serviceID, req.Note)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service marked as parts removed", MarkPartsRemovedResponse{
		RemovedPartID: result.PartID,
		ServiceStatus: result.ServiceStatus,
		Warnings:      common.Warnings(result.Warnings),
	})
}

// ListServiceParts handles GET /services/:id/removed-parts
// @Summary List the removed parts of a service
// @Tags removed-parts
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.RemovedPartDTO}
// @Router /services/{id}/removed-parts [get]
func (h *Handler) ListServiceParts(c *gin.Context) {
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

	result, err := h.listUC.Execute(c.Request.Context(), p, serviceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
