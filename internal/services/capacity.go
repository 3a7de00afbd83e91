package services

import (
	"os"
	"strconv"

	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

const DefaultMaxActiveTasks = 5

// CapacityConfig names the domain constants of the assignment limit: how
// many active tasks a user may hold at once and which task statuses count
// as active.
type CapacityConfig struct {
	MaxActiveTasks int
	ActiveStatuses []string
}

func DefaultCapacityConfig() CapacityConfig {
	return CapacityConfig{
		MaxActiveTasks: DefaultMaxActiveTasks,
		ActiveStatuses: []string{models.TaskStatusPending, models.TaskStatusInProgress},
	}
}

// CapacityConfigFromEnv returns the default config with the limit
// overridden by MAX_ACTIVE_TASKS when set to a positive integer.
func CapacityConfigFromEnv() CapacityConfig {
	config := DefaultCapacityConfig()

	if raw := os.Getenv("MAX_ACTIVE_TASKS"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			config.MaxActiveTasks = limit
		}
	}

	return config
}

// CapacityGuard validates a batch of proposed task assignments before any
// write happens. It performs no writes itself.
type CapacityGuard struct {
	Config CapacityConfig
}

// CheckAssignees verifies, in order: the project exists, every target user
// exists (reporting all missing ids at once), and no target user is already
// at the active-task limit. Counts run against current state; the task being
// created is not yet counted. The first user at or over the limit, in
// request order, fails the whole batch.
func (g CapacityGuard) CheckAssignees(tx *gorm.DB, projectID uint, userIDs []uint) error {
	var projectCount int64

	if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&projectCount).Error; err != nil {
		return NewDataAccessError(err)
	}

	if projectCount == 0 {
		return &ReferenceNotFoundError{Entity: "project", IDs: []uint{projectID}}
	}

	var existingIDs []uint

	if err := tx.Model(&models.User{}).Where("id IN ?", userIDs).Pluck("id", &existingIDs).Error; err != nil {
		return NewDataAccessError(err)
	}

	existing := make(map[uint]bool, len(existingIDs))

	for _, id := range existingIDs {
		existing[id] = true
	}

	var missing []uint

	for _, id := range userIDs {
		if !existing[id] {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		return &ReferenceNotFoundError{Entity: "users", IDs: missing}
	}

	var counts []struct {
		UserID      uint
		ActiveTasks int64
	}

	err := tx.Model(&models.TaskAssignment{}).
		Select("task_assignments.user_id AS user_id, COUNT(*) AS active_tasks").
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Where("task_assignments.user_id IN ?", userIDs).
		Where("tasks.status IN ?", g.Config.ActiveStatuses).
		Group("task_assignments.user_id").
		Scan(&counts).Error

	if err != nil {
		return NewDataAccessError(err)
	}

	activeByUser := make(map[uint]int64, len(counts))

	for _, row := range counts {
		activeByUser[row.UserID] = row.ActiveTasks
	}

	for _, id := range userIDs {
		if activeByUser[id] >= int64(g.Config.MaxActiveTasks) {
			return &CapacityExceededError{UserID: id, Limit: g.Config.MaxActiveTasks}
		}
	}

	return nil
}
