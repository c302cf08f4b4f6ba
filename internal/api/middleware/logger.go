package middleware

import (
	"time"

	"woosync/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger emits one request line through the service logger so API
// traffic lands in the same stream as everything else, not gin's
// default writer.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("%s %s -> %d in %s from %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)
	}
}
