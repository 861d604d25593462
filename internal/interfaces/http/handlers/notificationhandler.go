package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/application/notification/usecases"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers/common"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type NotificationHandler struct {
	listUC    listNotificationsUseCase
	markUC    markNotificationReadUseCase
	markAllUC markAllNotificationsReadUseCase
	logger    logger.Interface
}

func NewNotificationHandler(
	listUC listNotificationsUseCase,
	markUC markNotificationReadUseCase,
	markAllUC markAllNotificationsReadUseCase,
	logger logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listUC:    listUC,
		markUC:    markUC,
		markAllUC: markAllUC,
		logger:    logger,
	}
}

// NotificationListResponse is a page of dashboard notifications plus the unread badge count.
type NotificationListResponse struct {
	Items      []*usecases.NotificationDTO `json:"items"`
	Total      int64                       `json:"total"`
	Unread     int64                       `json:"unread"`
	Page       int                         `json:"page"`
	PageSize   int                         `json:"page_size"`
	TotalPages int                         `json:"total_pages"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ListNotifications godoc
// @Summary List own notifications
// @Description Dashboard notifications of the authenticated user, newest first
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param unread_only query bool false "Only unread notifications"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=NotificationListResponse}
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), p, usecases.ListNotificationsQuery{
		UnreadOnly: utils.ParseBoolQuery(c, "unread_only", false),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := result.Notifications
	if items == nil {
		items = []*usecases.NotificationDTO{}
	}
	utils.SuccessResponse(c, http.StatusOK, "", NotificationListResponse{
		Items:      items,
		Total:      result.Total,
		Unread:     result.Unread,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: utils.TotalPages(result.Total, result.PageSize),
	})
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse "Notification marked as read"
// @Failure 400 {object} utils.APIResponse "Invalid notification ID"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	notificationID, err := utils.ParseIDParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.markUC.Execute(c.Request.Context(), p, notificationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Security Bearer
// @Tags notifications
// @Produce json
// @Success 200 {object} utils.APIResponse{data=MarkAllReadResponse}
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	p, err := common.Principal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := h.markAllUC.Execute(c.Request.Context(), p)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("notifications marked as read", "user_id", p.UserID, "updated", updated)
	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", MarkAllReadResponse{Updated: updated})
}
