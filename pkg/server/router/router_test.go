package router

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/ledgercred/credential-service/config"
	"github.com/ledgercred/credential-service/pkg/service/credential"
	"github.com/ledgercred/credential-service/pkg/service/payload"
	"github.com/ledgercred/credential-service/pkg/storage"
)

func testPayloadService(t *testing.T) *payload.Service {
	db, err := storage.NewStorage(storage.Memory)
	require.NoError(t, err)
	payloadService, err := payload.NewPayloadService(db)
	require.NoError(t, err)
	require.NotEmpty(t, payloadService)
	return payloadService
}

func testCredentialService(t *testing.T, gateway credential.Gateway, journal *payload.Service) *credential.Service {
	serviceConfig := config.SigningConfig{SubmitOnSign: true, Expire: 5 * time.Minute, Timeout: time.Second}
	credentialService, err := credential.NewCredentialService(serviceConfig, gateway, journal)
	require.NoError(t, err)
	require.NotEmpty(t, credentialService)
	return credentialService
}

// serve runs a single request through handler mounted at path and returns the recorder.
func serve(t *testing.T, method, path, target string, handler func(c *gin.Context) error, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Handle(method, path, func(c *gin.Context) {
		require.NoError(t, handler(c))
	})

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, target, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, val any) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), val))
}
