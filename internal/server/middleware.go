package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"adf-relay/internal/common/logger"
)

// payloadKey carries the raw webhook body so a panic can be logged with the
// payload that caused it.
const payloadKey = "rawPayload"

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("Request handled", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

// recovery maps any panic to the fixed 500 body and logs the offending
// payload when the handler had captured one.
func recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fields := map[string]interface{}{
					"panic": r,
					"path":  c.Request.URL.Path,
				}
				if payload, ok := c.Get(payloadKey); ok {
					fields["payload"] = payload
				}
				log.Error("Recovered from panic", fields)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			}
		}()
		c.Next()
	}
}
