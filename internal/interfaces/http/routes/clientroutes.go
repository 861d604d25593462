package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	clienthandlers "github.com/frigoservis/servis/internal/interfaces/http/handlers/client"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
)

type ClientRouteConfig struct {
	ClientHandler        *clienthandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupClientRoutes(engine *gin.Engine, config *ClientRouteConfig) {
	perm := config.PermissionMiddleware

	clients := engine.Group("/admin/clients")
	clients.Use(config.AuthMiddleware.RequireAuth())
	{
		clients.POST("",
			perm.RequirePermission(permission.ResourceClient, permission.ActionCreate),
			config.ClientHandler.CreateClient)
		clients.GET("",
			perm.RequirePermission(permission.ResourceClient, permission.ActionList),
			config.ClientHandler.ListClients)

		clients.POST("/:id/appliances",
			perm.RequirePermission(permission.ResourceClient, permission.ActionUpdate),
			config.ClientHandler.AddAppliance)
		clients.GET("/:id/appliances",
			perm.RequirePermission(permission.ResourceClient, permission.ActionRead),
			config.ClientHandler.ListAppliances)

		clients.GET("/:id",
			perm.RequirePermission(permission.ResourceClient, permission.ActionRead),
			config.ClientHandler.GetClient)
	}
}
