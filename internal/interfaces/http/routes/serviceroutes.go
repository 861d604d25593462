package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	removedhandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/removedpart"
	servicehandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/service"
	sparehandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/sparepart"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type ServiceRouteConfig struct {
	ServiceHandler       *servicehandlers.Handler
	SparePartHandler     *sparehandlers.Handler
	RemovedPartHandler   *removedhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	Logger               logger.Interface
}

func SetupServiceRoutes(engine *gin.Engine, config *ServiceRouteConfig) {
	perm := config.PermissionMiddleware
	h := config.ServiceHandler

	services := engine.Group("/services")
	services.Use(config.AuthMiddleware.RequireAuth())
	{
		// Collection operations (no ID parameter)
		services.POST("",
			perm.RequirePermission(permission.ResourceService, permission.ActionCreate),
			h.CreateService)
		services.GET("",
			perm.RequirePermission(permission.ResourceService, permission.ActionList),
			h.ListServices)

		services.GET("/:id/history",
			perm.RequirePermission(permission.ResourceService, permission.ActionRead),
			h.GetHistory)
		services.GET("/:id/spare-parts",
			perm.RequirePermission(permission.ResourceService, permission.ActionRead),
			config.SparePartHandler.ListServiceOrders)
		services.GET("/:id/removed-parts",
			perm.RequirePermission(permission.ResourceRemovedPart, permission.ActionRead),
			config.RemovedPartHandler.ListServiceParts)
		services.PATCH("/:id/status",
			perm.RequirePermission(permission.ResourceService, permission.ActionChangeStatus),
			h.ChangeStatus)
		services.POST("/:id/complete",
			perm.RequirePermission(permission.ResourceService, permission.ActionComplete),
			h.CompleteService)
		services.PATCH("/:id/parts-removed",
			middleware.Deprecated(config.Logger, "/removed-parts"),
			perm.RequirePermission(permission.ResourceService, permission.ActionMarkRemoved),
			config.RemovedPartHandler.MarkPartsRemoved)

		// Generic parameterized route (must come LAST)
		services.GET("/:id",
			perm.RequirePermission(permission.ResourceService, permission.ActionRead),
			h.GetService)
	}

	admin := engine.Group("/admin/services")
	admin.Use(config.AuthMiddleware.RequireAuth())
	{
		admin.GET("/export",
			perm.RequirePermission(permission.ResourceService, permission.ActionExport),
			h.ExportServices)

		admin.POST("/:id/assign",
			perm.RequirePermission(permission.ResourceService, permission.ActionAssign),
			h.AssignTechnician)
		admin.POST("/:id/deliver",
			perm.RequirePermission(permission.ResourceService, permission.ActionDeliver),
			h.DeliverService)
		admin.POST("/:id/return-from-waiting",
			perm.RequirePermission(permission.ResourceService, permission.ActionReturnFromWaiting),
			h.ReturnFromWaiting)
		admin.POST("/:id/remind",
			perm.RequirePermission(permission.ResourceService, permission.ActionRemind),
			h.SendReminder)

		admin.DELETE("/:id",
			perm.RequirePermission(permission.ResourceService, permission.ActionDelete),
			h.DeleteService)
	}
}
