package middleware

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"woosync/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns handler panics into 500s. A panic caused by the client
// dropping the connection is not worth a stack trace; the write already
// failed and there is nobody left to answer.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isClientDisconnect(recovered) {
			c.Abort()
			return
		}

		log.Error("panic serving %s %s: %v\n%s",
			c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

func isClientDisconnect(recovered interface{}) bool {
	ne, ok := recovered.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer")
}
