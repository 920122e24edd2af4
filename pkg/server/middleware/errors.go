package middleware

import (
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/pkg/server/framework"
)

// Errors handles errors attached to the request during the call stack. Shutdown errors signal a graceful
// shutdown; everything else is logged against the request's trace.
func Errors(shutdown chan os.Signal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		errors := c.Errors.ByType(gin.ErrorTypeAny)
		if len(errors) == 0 {
			return
		}

		tracer := trace.SpanFromContext(c.Request.Context()).TracerProvider().Tracer(config.ServiceName)
		_, span := tracer.Start(c.Request.Context(), "service.middleware.errors")
		defer span.End()

		// check if there's a shutdown-worthy error
		for _, e := range errors {
			if framework.IsShutdown(e.Err) {
				c.Set(framework.ShutdownErrorKey.String(), e.Err)
				logrus.WithError(e.Err).Error("shutdown error in request, signaling shutdown")
				if shutdown != nil {
					shutdown <- syscall.SIGTERM
				}
				return
			}
		}

		logrus.WithFields(logrus.Fields{
			"traceId":   span.SpanContext().TraceID().String(),
			"requestId": c.GetString(framework.RequestIDKey.String()),
		}).Errorf("request errors: %v", errors.Errors())
	}
}
