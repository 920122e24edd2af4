package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgercred/credential-service/pkg/server/framework"
	svcframework "github.com/ledgercred/credential-service/pkg/service/framework"
)

func Readiness(services []svcframework.Service) framework.Handler {
	return readiness{
		getter: servicesToGet{services},
	}.ready
}

type readiness struct {
	getter serviceGetter
}

type GetReadinessResponse struct {
	Status          svcframework.Status                       `json:"status"`
	ServiceStatuses map[svcframework.Type]svcframework.Status `json:"serviceStatuses"`
}

// ready godoc
//
// @Summary     Readiness
// @Description Checks each service the api depends on and reports their statuses
// @Tags        Readiness
// @Produce     json
// @Success     200 {object} GetReadinessResponse
// @Router      /readiness [get]
func (r readiness) ready(c *gin.Context) error {
	services := r.getter.getServices()
	numServices := len(services)
	readyServices := 0
	statuses := make(map[svcframework.Type]svcframework.Status)
	for _, s := range services {
		status := s.Status()
		statuses[s.Type()] = status
		if status.IsReady() {
			readyServices++
		}
	}

	var status svcframework.Status
	if readyServices < numServices {
		status = svcframework.Status{
			Status:  svcframework.StatusNotReady,
			Message: fmt.Sprintf("out of [%d] service, [%d] are ready", numServices, readyServices),
		}
	} else {
		status = svcframework.Status{
			Status:  svcframework.StatusReady,
			Message: "all service ready",
		}
	}
	response := GetReadinessResponse{
		Status:          status,
		ServiceStatuses: statuses,
	}

	return framework.Respond(c, response, http.StatusOK)
}

// serviceGetter is a dependency of this readiness handler to know which service are available in the server
type serviceGetter interface {
	getServices() []svcframework.Service
}

type servicesToGet struct {
	services []svcframework.Service
}

func (s servicesToGet) getServices() []svcframework.Service {
	return s.services
}
