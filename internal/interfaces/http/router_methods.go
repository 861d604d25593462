package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
	"github.com/frigoservis/servis/internal/interfaces/http/routes"

	_ "github.com/frigoservis/servis/docs"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.hdlrs.userHandler.HealthCheck)
	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.hdlrs.authHandler,
		RateLimiter: r.loginRateLimiter,
	})

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:          r.hdlrs.userHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupServiceRoutes(r.engine, &routes.ServiceRouteConfig{
		ServiceHandler:       r.hdlrs.serviceHandler,
		SparePartHandler:     r.hdlrs.sparePartHandler,
		RemovedPartHandler:   r.hdlrs.removedPartHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		Logger:               r.log,
	})

	routes.SetupSparePartRoutes(r.engine, &routes.SparePartRouteConfig{
		SparePartHandler:     r.hdlrs.sparePartHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupRemovedPartRoutes(r.engine, &routes.RemovedPartRouteConfig{
		RemovedPartHandler:   r.hdlrs.removedPartHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupClientRoutes(r.engine, &routes.ClientRouteConfig{
		ClientHandler:        r.hdlrs.clientHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupNotificationRoutes(r.engine, &routes.NotificationRouteConfig{
		NotificationHandler:  r.hdlrs.notificationHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// StartBackgroundJobs starts the scheduled jobs, if any are configured.
func (r *Router) StartBackgroundJobs() {
	if r.scheduler != nil {
		r.scheduler.Start()
	}
}

// Shutdown stops background jobs and releases the audit stream and the Redis connection.
func (r *Router) Shutdown() {
	if r.scheduler != nil {
		if err := r.scheduler.Stop(); err != nil {
			r.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	if r.auditPublisher != nil {
		if err := r.auditPublisher.Close(); err != nil {
			r.log.Errorw("failed to close audit publisher", "error", err)
		}
	}

	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.log.Errorw("failed to close redis client", "error", err)
		}
	}
}
