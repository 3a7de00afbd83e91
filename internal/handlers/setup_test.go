package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/models"
	"github.com/taskboard-dev/taskboard/internal/router"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func createProject(t *testing.T, r *gin.Engine, name string) uint {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/api/projects", gin.H{
		"name":       name,
		"start_date": "2024-01-01",
		"status":     models.ProjectStatusActive,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return uint(decodeBody(t, w)["id"].(float64))
}

func createUser(t *testing.T, r *gin.Engine, name, email string) uint {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/api/users", gin.H{
		"name":  name,
		"email": email,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return uint(decodeBody(t, w)["id"].(float64))
}
