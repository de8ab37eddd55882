package ping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead-capture-backend/testutils"
	"lead-capture-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleHealth(t *testing.T) {
	// Switch to test mode
	gin.SetMode(gin.TestMode)

	// Setup
	r := gin.New()
	handler := New(testutils.SetupSQLiteDB(t))
	r.GET("/api/health", handler.HandleHealth)

	// Create test request
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)

	// Perform request
	r.ServeHTTP(w, req)

	// Assert status code
	assert.Equal(t, http.StatusOK, w.Code)

	// Parse response
	var response utils.Response
	err := json.Unmarshal(w.Body.Bytes(), &response)

	// Assert response structure
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "Service healthy", response.Message)

	// Assert response data
	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, "ok", data["database"])
}

func TestHandleHealth_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conn := testutils.SetupSQLiteDB(t)
	sqlDB, _ := conn.DB()
	sqlDB.Close()

	r := gin.New()
	r.GET("/api/health", New(conn).HandleHealth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleHealth_WithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/health", New(nil).HandleHealth)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
