// Package http assembles the API server: routing, middleware, and lifecycle.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syter/media/internal/config"
	"github.com/syter/media/internal/health"
	mediaMocks "github.com/syter/media/internal/media/http/mocks"
	"github.com/syter/media/internal/metrics"
	"github.com/syter/media/internal/ratelimit"
	tokenMocks "github.com/syter/media/internal/token/http/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost: "localhost",
		ServerPort: 0,
	}
}

// createTestServer creates a server with mocked use cases and no database.
func createTestServer(cfg *config.Config, limiter *ratelimit.Limiter) *Server {
	return NewServer(Deps{
		Config:       cfg,
		Logger:       discardLogger(),
		DB:           nil,
		TokenUseCase: new(tokenMocks.MockUseCase),
		MediaUseCase: new(mediaMocks.MockUseCase),
		Limiter:      limiter,
		Startup: health.StartupContext{
			StartedAt:   time.Now().UTC(),
			Version:     "test",
			Environment: "test",
		},
	})
}

// TestRouter_HealthEndpoint tests the health endpoint through the full router.
// With a nil database the service reports degraded.
func TestRouter_HealthEndpoint(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "degraded", response["status"])
	assert.Equal(t, "test", response["version"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

// TestRouter_TokenInfoRequiresToken tests that guarded token routes reject
// requests without an Authorization header.
func TestRouter_TokenInfoRequiresToken(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tokens/info", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRouter_UploadRequiresToken tests that media upload rejects requests
// without an Authorization header.
func TestRouter_UploadRequiresToken(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/media/upload", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestRouter_InfoRejectsInvalidID tests that a malformed media item id is a
// bad request on the unguarded info route.
func TestRouter_InfoRejectsInvalidID(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/not-a-uuid/info", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestRouter_NotFoundEndpoint tests 404 handling.
func TestRouter_NotFoundEndpoint(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRouter_RateLimitMounted tests that a configured limiter rejects the
// request over the limit with 429 and rate limit headers.
func TestRouter_RateLimitMounted(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(context.Background(), time.Minute), 1, time.Minute)
	server := createTestServer(cfg, limiter)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	server.GetHandler().ServeHTTP(first, req)
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	server.GetHandler().ServeHTTP(second, req)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
}

// TestCustomLoggerMiddleware tests the custom logging middleware.
func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

// TestRecoveryMiddleware tests Gin's built-in recovery middleware.
func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestRequestIDMiddleware_HeaderPresent verifies X-Request-Id header is present in response.
func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID, "X-Request-Id header should be present")

	parsedUUID, err := uuid.Parse(requestID)
	require.NoError(t, err, "X-Request-Id should be a valid UUID")
	assert.NotEqual(t, uuid.Nil, parsedUUID, "X-Request-Id should not be nil UUID")
}

// TestCreateCORSMiddleware tests CORS middleware creation from configuration.
func TestCreateCORSMiddleware(t *testing.T) {
	logger := discardLogger()

	t.Run("disabled returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://example.com", logger))
	})

	t.Run("enabled without origins returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
		assert.Nil(t, createCORSMiddleware(true, " , ,", logger))
	})

	t.Run("enabled with origins returns middleware", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://example.com", logger))
	})
}

// TestParseOrigins tests origin list parsing.
func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single origin",
			input: "https://example.com",
			want:  []string{"https://example.com"},
		},
		{
			name:  "multiple origins with whitespace",
			input: " https://a.example.com , https://b.example.com ",
			want:  []string{"https://a.example.com", "https://b.example.com"},
		},
		{
			name:  "empty entries dropped",
			input: "https://example.com,,",
			want:  []string{"https://example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.input))
		})
	}
}

// TestCORS_PreflightThroughRouter tests that a preflight request against a
// CORS-enabled server answers with the allowed origin.
func TestCORS_PreflightThroughRouter(t *testing.T) {
	cfg := testConfig()
	cfg.CORSEnabled = true
	cfg.CORSAllowOrigins = "https://example.com"

	server := createTestServer(cfg, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	// httptest.NewRequest defaults Host to "example.com", which would make
	// this a same-origin request that the CORS middleware ignores.
	req.Host = "api.test.local"
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(context.Background()); err != nil {
			errChan <- err
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	assert.NoError(t, err)

	select {
	case err := <-errChan:
		t.Fatalf("server startup failed: %v", err)
	default:
	}
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// TestServer_NoMetricsEndpoint tests that the main server does NOT expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	server := createTestServer(testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
