package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/models"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	r := setupRouter(t)

	createUser(t, r, "Ada", "ada@example.com")

	w := performRequest(t, r, http.MethodPost, "/api/users", gin.H{
		"name":  "Impostor",
		"email": "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "unique")

	// No second row may exist.
	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserMissingFields(t *testing.T) {
	r := setupRouter(t)

	w := performRequest(t, r, http.MethodPost, "/api/users", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.ElementsMatch(t, []interface{}{"name", "email"}, body["missing_fields"])
}

func TestUpdateUserKeepsOmittedFields(t *testing.T) {
	r := setupRouter(t)

	id := createUser(t, r, "Ada", "ada@example.com")

	w := performRequest(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{
		"name": "Ada Lovelace",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, db.DB.First(&user, id).Error)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestUpdateUserRequiresAField(t *testing.T) {
	r := setupRouter(t)

	id := createUser(t, r, "Ada", "ada@example.com")

	w := performRequest(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", id), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserRemovesAssignmentsOverAPI(t *testing.T) {
	r := setupRouter(t)

	projectID := createProject(t, r, "Team project")
	userID := createUser(t, r, "Ada", "ada@example.com")

	w := performRequest(t, r, http.MethodPost, "/api/tasks", gin.H{
		"name":           "Assigned task",
		"project_id":     projectID,
		"status":         models.TaskStatusPending,
		"assigned_users": []uint{userID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", userID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.DB.Model(&models.TaskAssignment{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Zero(t, count)

	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", userID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersIncludesAssignedTasks(t *testing.T) {
	r := setupRouter(t)

	projectID := createProject(t, r, "Listing")
	userID := createUser(t, r, "Ada", "ada@example.com")

	w := performRequest(t, r, http.MethodPost, "/api/tasks", gin.H{
		"name":           "Visible task",
		"project_id":     projectID,
		"status":         models.TaskStatusInProgress,
		"assigned_users": []uint{userID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)

	tasks := users[0].(map[string]interface{})["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	assert.Equal(t, "Visible task", tasks[0].(map[string]interface{})["name"])
}
