package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/infrastructure/auth"
	"github.com/frigoservis/servis/internal/infrastructure/config"
	"github.com/frigoservis/servis/internal/infrastructure/email"
	"github.com/frigoservis/servis/internal/infrastructure/export"
	"github.com/frigoservis/servis/internal/infrastructure/permission"
	"github.com/frigoservis/servis/internal/infrastructure/pubsub"
	"github.com/frigoservis/servis/internal/infrastructure/scheduler"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
	shareddb "github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers. It wires everything together and releases external connections
// in Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	txMgr  *shareddb.TransactionManager

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	loginRateLimiter     *middleware.RateLimiter

	// Auth & permission services
	jwtSvc   *auth.JWTService
	hasher   *auth.BcryptPasswordHasher
	enforcer *permission.Enforcer

	// Status transitions and their fan-out
	coordinator    *coordinator.Coordinator
	mailer         *email.SMTPEmailService
	auditPublisher *pubsub.AuditPublisher
	sheetWriter    *export.ExcelSheetWriter

	// Background jobs, nil when no report schedule is configured
	scheduler *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
// A nil redisClient makes the container connect using cfg.Redis.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth, Permissions
	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	// Section 2: Notifications - Templates, Planner, Dispatcher, Coordinator
	if err := c.initNotifications(); err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	// Section 3: Use cases
	c.initUseCases()

	// Section 4: Handlers
	c.initHandlers()

	// Section 5: Background jobs
	if err := c.initScheduler(); err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return c, nil
}
