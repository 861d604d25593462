package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	sparehandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/sparepart"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
)

type SparePartRouteConfig struct {
	SparePartHandler     *sparehandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupSparePartRoutes(engine *gin.Engine, config *SparePartRouteConfig) {
	perm := config.PermissionMiddleware

	orders := engine.Group("/spare-parts")
	orders.Use(config.AuthMiddleware.RequireAuth())
	{
		orders.POST("",
			perm.RequirePermission(permission.ResourceSparePart, permission.ActionCreate),
			config.SparePartHandler.CreateOrder)
		orders.GET("/:id",
			perm.RequirePermission(permission.ResourceSparePart, permission.ActionRead),
			config.SparePartHandler.GetOrder)
	}

	admin := engine.Group("/admin/spare-parts")
	admin.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts
		admin.GET("",
			perm.RequirePermission(permission.ResourceSparePart, permission.ActionList),
			config.SparePartHandler.ListOrders)
		admin.GET("/export",
			perm.RequirePermission(permission.ResourceSparePart, permission.ActionExport),
			config.SparePartHandler.ExportOrders)

		admin.PUT("/:id",
			perm.RequirePermission(permission.ResourceSparePart, permission.ActionUpdate),
			config.SparePartHandler.UpdateOrder)
	}
}
