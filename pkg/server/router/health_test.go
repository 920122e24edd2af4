package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	svcframework "github.com/ledgercred/credential-service/pkg/service/framework"
)

type staticProbe bool

func (p staticProbe) IsConnected() bool {
	return bool(p)
}

type staticService struct {
	serviceType svcframework.Type
	ready       bool
}

func (s staticService) Type() svcframework.Type {
	return s.serviceType
}

func (s staticService) Status() svcframework.Status {
	if s.ready {
		return svcframework.Status{Status: svcframework.StatusReady}
	}
	return svcframework.Status{Status: svcframework.StatusNotReady, Message: "not connected"}
}

func TestHealth(t *testing.T) {
	t.Run("connected", func(tt *testing.T) {
		w := serve(tt, http.MethodGet, "/health", "/health", Health(staticProbe(true)), nil)
		assert.Equal(tt, http.StatusOK, w.Code)
		assert.Equal(tt, "ok\n--\nTrue", w.Body.String())
		assert.Contains(tt, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("disconnected", func(tt *testing.T) {
		w := serve(tt, http.MethodGet, "/health", "/health", Health(staticProbe(false)), nil)
		assert.Equal(tt, http.StatusOK, w.Code)
		assert.Equal(tt, "ok\n--\nFalse", w.Body.String())
	})

	t.Run("no probe", func(tt *testing.T) {
		w := serve(tt, http.MethodGet, "/health", "/health", Health(nil), nil)
		assert.Equal(tt, "ok\n--\nFalse", w.Body.String())
	})
}

func TestReadiness(t *testing.T) {
	t.Run("all ready", func(tt *testing.T) {
		services := []svcframework.Service{
			staticService{serviceType: svcframework.Signing, ready: true},
			staticService{serviceType: svcframework.Payload, ready: true},
		}
		w := serve(tt, http.MethodGet, "/readiness", "/readiness", Readiness(services), nil)
		assert.Equal(tt, http.StatusOK, w.Code)

		var resp GetReadinessResponse
		decodeBody(tt, w, &resp)
		assert.Equal(tt, svcframework.StatusReady, resp.Status.Status)
		assert.Len(tt, resp.ServiceStatuses, 2)
	})

	t.Run("ledger down", func(tt *testing.T) {
		services := []svcframework.Service{
			staticService{serviceType: svcframework.Ledger, ready: false},
			staticService{serviceType: svcframework.Signing, ready: true},
		}
		w := serve(tt, http.MethodGet, "/readiness", "/readiness", Readiness(services), nil)
		assert.Equal(tt, http.StatusOK, w.Code)

		var resp GetReadinessResponse
		decodeBody(tt, w, &resp)
		assert.Equal(tt, svcframework.StatusNotReady, resp.Status.Status)
		assert.Equal(tt, "out of [2] service, [1] are ready", resp.Status.Message)
		assert.Equal(tt, svcframework.StatusNotReady, resp.ServiceStatuses[svcframework.Ledger].Status)
	})
}
