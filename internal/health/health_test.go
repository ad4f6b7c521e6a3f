package health

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHealthContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	return c, recorder
}

func testStartup() StartupContext {
	return StartupContext{
		StartedAt:   time.Now().UTC().Add(-time.Minute),
		Version:     "1.2.3",
		Environment: "test",
	}
}

func TestHealthHandler_Healthy(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(db, testStartup(), logger)

	c, w := newHealthContext(t)
	handler.HealthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "1.2.3", response["version"])
	assert.Equal(t, "test", response["environment"])
	assert.GreaterOrEqual(t, response["uptime_seconds"].(float64), float64(60))

	components := response["components"].(map[string]any)
	assert.Equal(t, "ok", components["database"])
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(db, testStartup(), logger)

	c, w := newHealthContext(t)
	handler.HealthHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "degraded", response["status"])

	components := response["components"].(map[string]any)
	assert.Equal(t, "error", components["database"])
}

func TestHealthHandler_NilDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(nil, testStartup(), logger)

	c, w := newHealthContext(t)
	handler.HealthHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
