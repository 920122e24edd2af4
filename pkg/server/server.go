// Package server contains the full set of handler functions and routes
// supported by the http api
package server

import (
	"net/http"
	"os"

	sdkutil "github.com/TBD54566975/ssi-sdk/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ledgercred/credential-service/config"
	_ "github.com/ledgercred/credential-service/doc"
	"github.com/ledgercred/credential-service/pkg/server/framework"
	"github.com/ledgercred/credential-service/pkg/server/middleware"
	"github.com/ledgercred/credential-service/pkg/server/router"
	"github.com/ledgercred/credential-service/pkg/service"
	svcframework "github.com/ledgercred/credential-service/pkg/service/framework"
)

const (
	HealthPrefix     = "/health"
	ReadinessPrefix  = "/readiness"
	MetricsPrefix    = "/metrics"
	SwaggerPrefix    = "/swagger/*any"
	CredentialPrefix = "/credential"
	AcceptPath       = "/accept"
	PayloadsPrefix   = "/payloads"
)

// CredentialServer exposes all dependencies needed to run a http server and all its services
type CredentialServer struct {
	*config.ServerConfig
	*service.CredentialService
	*framework.Server
}

// NewCredentialServer does two things: instantiates all service and registers their HTTP bindings
func NewCredentialServer(shutdown chan os.Signal, cfg config.CredentialServiceConfig) (*CredentialServer, error) {
	svc, err := service.InstantiateCredentialService(cfg)
	if err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "unable to instantiate credential service")
	}
	return newCredentialServer(shutdown, cfg, svc)
}

func newCredentialServer(shutdown chan os.Signal, cfg config.CredentialServiceConfig, svc *service.CredentialService) (*CredentialServer, error) {
	// creates an HTTP server from the framework, and wrap it to extend it for the credential service
	engine := setUpEngine(cfg.Server, shutdown)
	httpServer := framework.NewHTTPServer(cfg.Server, engine, shutdown)

	// service-level routers
	httpServer.Handle(http.MethodGet, HealthPrefix, router.Health(svc.Ledger))
	httpServer.Handle(http.MethodGet, ReadinessPrefix, router.Readiness(svc.GetServices()))
	httpServer.Handle(http.MethodGet, SwaggerPrefix, router.Swagger)
	engine.GET(MetricsPrefix, gin.WrapH(promhttp.Handler()))

	if err := CredentialAPI(httpServer, svc.Credential); err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "unable to instantiate Credential API")
	}
	if err := PayloadAPI(httpServer, svc.Payload); err != nil {
		return nil, sdkutil.LoggingErrorMsg(err, "unable to instantiate Payload API")
	}

	return &CredentialServer{
		Server:            httpServer,
		CredentialService: svc,
		ServerConfig:      &cfg.Server,
	}, nil
}

// setUpEngine creates the gin engine and sets up the middleware based on config
func setUpEngine(cfg config.ServerConfig, shutdown chan os.Signal) *gin.Engine {
	switch cfg.Environment {
	case config.EnvironmentDev:
		gin.SetMode(gin.DebugMode)
	case config.EnvironmentTest:
		gin.SetMode(gin.TestMode)
	case config.EnvironmentProd:
		gin.SetMode(gin.ReleaseMode)
	}

	middlewares := gin.HandlersChain{
		middleware.Panics(),
		otelgin.Middleware(config.ServiceName),
		middleware.Logger(logrus.StandardLogger()),
		middleware.Errors(shutdown),
		middleware.Metrics(),
		middleware.CORS(cfg.AllowedOrigins),
	}

	// set up engine and middleware
	engine := gin.New()
	engine.Use(middlewares...)
	return engine
}

// CredentialAPI registers the HTTP routes that prepare credential transactions
func CredentialAPI(s *framework.Server, service svcframework.Service) error {
	credRouter, err := router.NewCredentialRouter(service)
	if err != nil {
		return sdkutil.LoggingErrorMsg(err, "creating credential router")
	}

	s.Handle(http.MethodPost, CredentialPrefix, credRouter.CreateCredential)
	s.Handle(http.MethodPost, CredentialPrefix+AcceptPath, credRouter.AcceptCredential)
	return nil
}

// PayloadAPI registers the HTTP routes of the signing request journal
func PayloadAPI(s *framework.Server, service svcframework.Service) error {
	payloadRouter, err := router.NewPayloadRouter(service)
	if err != nil {
		return sdkutil.LoggingErrorMsg(err, "creating payload router")
	}

	s.Handle(http.MethodGet, PayloadsPrefix, payloadRouter.ListPayloads)
	s.Handle(http.MethodGet, PayloadsPrefix+"/:"+router.UUIDParam, payloadRouter.GetPayload)
	return nil
}
