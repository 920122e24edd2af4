package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgercred/credential-service/pkg/server/framework"
)

const healthPrefix = "ok\n--\n"

// ConnectivityProbe reports whether the ledger connection is up.
type ConnectivityProbe interface {
	IsConnected() bool
}

// Health godoc
//
// @Summary     Health Check
// @Description Liveness of the service and whether the ledger connection is established
// @Tags        HealthCheck
// @Produce     plain
// @Success     200 {string} string "ok\n--\nTrue"
// @Router      /health [get]
func Health(probe ConnectivityProbe) framework.Handler {
	return func(c *gin.Context) error {
		connected := "False"
		if probe != nil && probe.IsConnected() {
			connected = "True"
		}
		c.String(http.StatusOK, healthPrefix+connected)
		return nil
	}
}
