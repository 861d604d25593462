package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frigoservis/servis/internal/application/coordinator"
	notificationApp "github.com/frigoservis/servis/internal/application/notification"
	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
	"github.com/frigoservis/servis/internal/infrastructure/auth"
	"github.com/frigoservis/servis/internal/infrastructure/cache"
	"github.com/frigoservis/servis/internal/infrastructure/config"
	"github.com/frigoservis/servis/internal/infrastructure/email"
	"github.com/frigoservis/servis/internal/infrastructure/export"
	"github.com/frigoservis/servis/internal/infrastructure/permission"
	"github.com/frigoservis/servis/internal/infrastructure/pubsub"
	"github.com/frigoservis/servis/internal/infrastructure/ratelimit"
	"github.com/frigoservis/servis/internal/infrastructure/scheduler"
	"github.com/frigoservis/servis/internal/infrastructure/sms"
	"github.com/frigoservis/servis/internal/infrastructure/template"
	"github.com/frigoservis/servis/internal/infrastructure/whatsapp"
	"github.com/frigoservis/servis/internal/interfaces/http/middleware"
	shareddb "github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/logger"
)

const defaultGuardTTL = 10 * time.Minute

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth, Permissions
// ============================================================

// initInfrastructure initializes Redis, repositories, token and password
// services, the casbin enforcer and the auth middlewares.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if c.redis == nil {
		c.redis = initRedis(cfg, log)
	}

	c.repos = newRepositories(c.db)
	c.txMgr = shareddb.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.sheetWriter = export.NewExcelSheetWriter()

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return err
	}
	if err := enforcer.SyncPolicies(); err != nil {
		return err
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)
	var limiter ratelimit.RateLimiter
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.loginRateLimiter = middleware.NewRateLimiter(limiter, "login", ratelimit.Limits{PerMinute: cfg.Server.LoginRateLimit}, log)

	return nil
}

// initRedis connects to Redis. An empty host or a failed ping leaves the
// client nil; the dispatch guard and the login limiter then stay off.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if cfg.Redis.Host == "" {
		log.Warnw("redis not configured, duplicate guard and login rate limit disabled")
		return nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Errorw("failed to connect to Redis, duplicate guard and login rate limit disabled", "error", err)
		_ = redisClient.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient
}

// ============================================================
// Section 2: Notifications - Templates, Planner, Dispatcher, Coordinator
// ============================================================

// initNotifications loads message templates, registers the enabled
// transports on the dispatcher and builds the status coordinator.
func (c *Container) initNotifications() error {
	cfg := c.cfg
	log := c.log

	templates := template.NewMessageTemplateLoader(cfg.Notification.TemplatesPath, log.Named("templates"))
	if err := templates.Load(); err != nil {
		return err
	}

	planner := notificationApp.NewPlanner(templates, notificationApp.ChannelPolicy{
		SMS:         cfg.Notification.SMSEnabled && cfg.SMS.Enabled,
		WhatsApp:    cfg.Notification.WhatsApp && cfg.WhatsApp.Enabled,
		Email:       cfg.Notification.EmailEnabled && cfg.Email.Enabled,
		CompanyName: cfg.Notification.CompanyName,
	})

	guardTTL := defaultGuardTTL
	if cfg.Notification.GuardTTLMinutes > 0 {
		guardTTL = time.Duration(cfg.Notification.GuardTTLMinutes) * time.Minute
	}

	var guard notificationApp.DuplicateGuard
	if c.redis != nil {
		guard = cache.NewDispatchGuard(c.redis)
	}
	dispatcher := notificationApp.NewDispatcher(c.repos.outboxRepo, guard, guardTTL, log.Named("dispatcher"))

	c.mailer = newMailer(cfg)
	if cfg.SMS.Enabled {
		dispatcher.Register(vo.ChannelSMS, sms.NewGatewaySender(cfg.SMS))
	}
	if cfg.WhatsApp.Enabled {
		dispatcher.Register(vo.ChannelWhatsApp, whatsapp.NewCloudSender(cfg.WhatsApp))
	}
	if cfg.Email.Enabled {
		dispatcher.Register(vo.ChannelEmail, c.mailer)
	}

	deps := coordinator.Deps{
		TxManager:        c.txMgr,
		ServiceRepo:      c.repos.serviceRepo,
		HistoryRepo:      c.repos.historyRepo,
		OrderRepo:        c.repos.orderRepo,
		RemovedPartRepo:  c.repos.removedPartRepo,
		ClientRepo:       c.repos.clientRepo,
		ApplianceRepo:    c.repos.applianceRepo,
		UserRepo:         c.repos.userRepo,
		NotificationRepo: c.repos.notificationRepo,
		OutboxRepo:       c.repos.outboxRepo,
		Planner:          planner,
		Dispatcher:       dispatcher,
		Logger:           log.Named("coordinator"),
	}

	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := pubsub.NewAuditPublisher(cfg.Kafka, log.Named("audit"))
		if err != nil {
			// The audit stream is best effort; transitions must keep working.
			log.Errorw("failed to create audit publisher, audit stream disabled", "error", err)
		} else {
			c.auditPublisher = publisher
			deps.Publisher = publisher
		}
	}

	c.coordinator = coordinator.New(deps)
	return nil
}

func newMailer(cfg *config.Config) *email.SMTPEmailService {
	return email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})
}

// ============================================================
// Section 5: Background jobs
// ============================================================

func (c *Container) initScheduler() error {
	schedule := c.cfg.Report.Schedule
	if schedule == "" {
		return nil
	}

	mgr, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return err
	}
	if err := mgr.RegisterDailyReportJob(schedule, c.ucs.dailyReportUC); err != nil {
		return err
	}
	c.scheduler = mgr
	return nil
}
