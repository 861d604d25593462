package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	removedhandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/removedpart"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
)

type RemovedPartRouteConfig struct {
	RemovedPartHandler   *removedhandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupRemovedPartRoutes(engine *gin.Engine, config *RemovedPartRouteConfig) {
	perm := config.PermissionMiddleware

	parts := engine.Group("/removed-parts")
	parts.Use(config.AuthMiddleware.RequireAuth())
	{
		parts.POST("",
			perm.RequirePermission(permission.ResourceRemovedPart, permission.ActionCreate),
			config.RemovedPartHandler.CreatePart)
		// Returning a part only changes its state
		parts.PATCH("/:id/return",
			perm.RequirePermission(permission.ResourceRemovedPart, permission.ActionReturn),
			config.RemovedPartHandler.ReturnPart)
	}
}
