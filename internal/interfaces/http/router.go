package http

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frigoservis/servis/internal/infrastructure/config"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Router represents the HTTP router configuration.
// It embeds *Container to access all infrastructure, handlers and middlewares.
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies wired.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}
