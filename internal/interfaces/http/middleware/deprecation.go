package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// Deprecated marks a route as kept only for old clients. successor names the replacement route.
func Deprecated(log logger.Interface, successor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(constants.HeaderDeprecation, "true")
		if successor != "" {
			c.Header("Link", "<"+successor+`>; rel="successor-version"`)
		}
		log.Warnw("deprecated route called",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"successor", successor,
		)
		c.Next()
	}
}
