package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgercred/credential-service/pkg/server/framework"
)

var allowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}

func newTestEngine(shutdown chan os.Signal, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Panics(), Errors(shutdown), Logger(logrus.StandardLogger()), Metrics(), CORS(allowedOrigins))
	engine.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.POST("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	engine.GET("/fail", handlers...)
	return engine
}

func TestCORS(t *testing.T) {
	engine := newTestEngine(nil)

	t.Run("allowed origin", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(tt, http.StatusOK, w.Code)
		assert.Equal(tt, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from allowed origin", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
		req.Header.Set("Origin", "http://127.0.0.1:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(tt, http.StatusNoContent, w.Code)
		assert.Equal(tt, "http://127.0.0.1:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(tt, http.StatusForbidden, w.Code)
		assert.Empty(tt, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoggerRequestID(t *testing.T) {
	engine := newTestEngine(nil)

	t.Run("generated", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.NotEmpty(tt, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(tt *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(tt, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestPanics(t *testing.T) {
	engine := newTestEngine(nil)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp framework.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp.Error)
}

func TestErrorsSignalsShutdown(t *testing.T) {
	shutdown := make(chan os.Signal, 1)
	engine := newTestEngine(shutdown, func(c *gin.Context) {
		_ = c.Error(framework.NewShutdownError("integrity issue"))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, shutdown, 1)
}

func TestErrorsOrdinaryErrorDoesNotShutdown(t *testing.T) {
	shutdown := make(chan os.Signal, 1)
	engine := newTestEngine(shutdown, func(c *gin.Context) {
		_ = framework.LoggingRespondErrWithMsg(c, errors.New("bad input"), "bad input", http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, shutdown, 0)
}
