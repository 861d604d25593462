package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/infrastructure/permission"
	"github.com/frigoservis/servis/internal/interfaces/http/handlers"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	users := engine.Group("/admin/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.POST("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceUser, permission.ActionCreate),
			config.UserHandler.CreateUser)
	}
}
