package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	perm := config.PermissionMiddleware

	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("",
			perm.RequirePermission(permission.ResourceNotification, permission.ActionRead),
			config.NotificationHandler.ListNotifications)
		notifications.POST("/read-all",
			perm.RequirePermission(permission.ResourceNotification, permission.ActionUpdate),
			config.NotificationHandler.MarkAllAsRead)
		notifications.PATCH("/:id/read",
			perm.RequirePermission(permission.ResourceNotification, permission.ActionUpdate),
			config.NotificationHandler.MarkAsRead)
	}
}
