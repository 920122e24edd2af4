package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/internal/util"
	"github.com/ledgercred/credential-service/pkg/server/framework"
)

const RequestIDHeader = "X-Request-ID"

// Logger logs request info once the handler has run, in the following form:
//
//	requestId : (StatusCode) HTTPMethod Path -> IPAddr (latency)
//
// The request id is taken from the X-Request-ID header when present, and echoed back.
func Logger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		requestID = util.SanitizeLog(requestID)
		c.Set(framework.RequestIDKey.String(), requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		path := util.SanitizeLog(c.Request.URL.Path)
		latency := time.Since(start)
		entry := logger.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   latency.String(),
			"clientIp":  c.ClientIP(),
		})
		msg := "request completed"
		switch {
		case c.Writer.Status() >= 500:
			entry.Error(msg)
		case c.Writer.Status() >= 400:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}
