package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test keeps the pool's connections on
	// the same database without leaking state between tests.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	return gdb
}

func seedProject(t *testing.T, gdb *gorm.DB, name, status string) models.Project {
	t.Helper()

	project := models.Project{
		Name:      name,
		StartDate: "2024-01-01",
		Status:    status,
	}
	require.NoError(t, gdb.Create(&project).Error)

	return project
}

func seedUser(t *testing.T, gdb *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email}
	require.NoError(t, gdb.Create(&user).Error)

	return user
}

func seedTask(t *testing.T, gdb *gorm.DB, projectID uint, name, status string) models.Task {
	t.Helper()

	task := models.Task{ProjectID: projectID, Name: name, Status: status}
	require.NoError(t, gdb.Create(&task).Error)

	return task
}

func seedAssignment(t *testing.T, gdb *gorm.DB, taskID, userID uint) {
	t.Helper()

	require.NoError(t, gdb.Create(&models.TaskAssignment{TaskID: taskID, UserID: userID}).Error)
}
