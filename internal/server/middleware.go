package server

import (
	"github.com/gin-gonic/gin"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/osmike/orbitcron/internal/manager"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// authMiddleware rejects requests whose credential does not match the manager password.
func authMiddleware(m *manager.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := c.Query("password")
		if candidate == "" {
			candidate = c.GetHeader(PASSWORD_HEADER)
		}
		if !m.CheckPassword(candidate) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errs.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// requestLogger logs one line per request. The query string is left out since it may carry the password.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
