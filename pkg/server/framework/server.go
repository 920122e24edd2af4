// Package framework is a minimal web framework on top of gin.
package framework

import (
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/internal/util"
)

type contextKey string

const (
	TraceIDKey       contextKey = "traceID"
	RequestIDKey     contextKey = "requestID"
	ShutdownErrorKey contextKey = "shutdownError"
)

func (c contextKey) String() string {
	return string(c)
}

// Server is the entrypoint into our application and what configures our context object for each of our http router.
type Server struct {
	*http.Server
	router   *gin.Engine
	tracer   trace.Tracer
	shutdown chan os.Signal
}

// Handler is a gin handler that may return an error it did not respond with itself.
type Handler func(c *gin.Context) error

// NewHTTPServer creates a Server that handles a set of routes for the application.
func NewHTTPServer(cfg config.ServerConfig, handler *gin.Engine, shutdown chan os.Signal) *Server {
	var tracer trace.Tracer
	if cfg.JagerEnabled {
		tracer = otel.Tracer(config.ServiceName)
	}

	return &Server{
		Server: &http.Server{
			Addr:              cfg.APIHost,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		router:   handler,
		tracer:   tracer,
		shutdown: shutdown,
	}
}

// Handle sets a handler function for a given HTTP method and path pair
// to the server mux.
func (s *Server) Handle(method string, path string, handler Handler, middleware ...gin.HandlerFunc) {
	h := func(c *gin.Context) {
		r := c.Request

		// init a span, but only if the tracer is initialized
		if s.tracer != nil {
			ctx, span := s.tracer.Start(r.Context(), path)
			traceID := span.SpanContext().TraceID().String()
			c.Set(TraceIDKey.String(), traceID)
			c.Request = r.WithContext(ctx)

			defer span.End()
			span.SetAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.String("host", r.Host),
				attribute.String("user-agent", r.UserAgent()),
				attribute.String("proto", r.Proto),
			)
		}

		// handle the request
		if err := handler(c); err != nil {
			// if there's still an error at this point we know it's unhandled, and worth shutting down over
			// when it says so
			logrus.WithError(err).Errorf("request failed: %s %s", method, util.SanitizeLog(path))
			if IsShutdown(err) {
				logrus.WithError(err).Errorf("unsafe error, shutting down")
				s.SignalShutdown()
				return
			}
			if !c.Writer.Written() {
				RespondError(c, err)
			}
		}
	}

	handlers := append(append(gin.HandlersChain{}, middleware...), h)
	s.router.Handle(method, path, handlers...)
}

// SignalShutdown is used to gracefully shut down the server when an integrity issue is identified.
func (s *Server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}
