package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ledgercred/credential-service/pkg/server/framework"
)

// Panics recovers from panics in handlers, logs the stack and responds with a generic 500.
func Panics() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"requestId": c.GetString(framework.RequestIDKey.String()),
			"panic":     recovered,
		}).Errorf("PANIC :\n%s", debug.Stack())

		c.AbortWithStatusJSON(http.StatusInternalServerError, framework.ErrorResponse{
			Error: http.StatusText(http.StatusInternalServerError),
		})
	})
}
