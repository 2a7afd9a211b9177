package middleware

import (
	"net/http"

	"github.com/netpesa/netpesa/logger"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts a panic anywhere below it into the standard
// failure envelope instead of a dropped connection. One request crashing
// must never take the panel down with it.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logger.Errorf("panic recovered on %s: %v", c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"msg":     "something went wrong, please reload the page",
			"obj":     nil,
		})
	})
}
