package services

import (
	"errors"

	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	ProjectID     uint
	Name          string
	Description   string
	DueDate       string
	Status        string
	AssignedUsers []uint
}

// CreateTask runs the capacity guard, then inserts the task row and one
// assignment row per target user as a single transaction. Any failure rolls
// back the whole batch; a task is never left partially assigned.
func CreateTask(gdb *gorm.DB, guard CapacityGuard, input CreateTaskInput) (models.Task, error) {
	task := models.Task{
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := guard.CheckAssignees(tx, input.ProjectID, input.AssignedUsers); err != nil {
			return err
		}

		if err := tx.Create(&task).Error; err != nil {
			return NewDataAccessError(err)
		}

		for _, userID := range input.AssignedUsers {
			assignment := models.TaskAssignment{TaskID: task.ID, UserID: userID}

			if err := tx.Create(&assignment).Error; err != nil {
				return NewDataAccessError(err)
			}
		}

		return nil
	})

	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// TaskUpdate carries the optional fields of a task update; nil means keep
// the current value.
type TaskUpdate struct {
	Name        *string
	Description *string
	DueDate     *string
	Status      *string
}

func (u TaskUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.DueDate == nil && u.Status == nil
}

// UpdateTask applies a partial update to a task. When the update sets the
// status to Completed it also runs the completion cascade against the parent
// project, inside the same transaction, observing the post-update task
// state. The returned flag reports whether the cascade completed the
// project.
func UpdateTask(gdb *gorm.DB, id uint, update TaskUpdate) (models.Task, bool, error) {
	if update.Empty() {
		return models.Task{}, false, &ValidationError{Message: "please provide at least one field to update"}
	}

	var task models.Task
	var projectCompleted bool

	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "task", ID: id}
			}
			return NewDataAccessError(err)
		}

		updates := make(map[string]interface{})

		if update.Name != nil {
			updates["name"] = *update.Name
		}

		if update.Description != nil {
			updates["description"] = *update.Description
		}

		if update.DueDate != nil {
			updates["due_date"] = *update.DueDate
		}

		if update.Status != nil {
			updates["status"] = *update.Status
		}

		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			return NewDataAccessError(err)
		}

		// The cascade fires only on a transition into Completed, never on
		// updates back to Pending or In Progress.
		if update.Status != nil && *update.Status == models.TaskStatusCompleted {
			completed, err := CompleteProjectIfDone(tx, task.ProjectID)

			if err != nil {
				return err
			}

			projectCompleted = completed
		}

		return nil
	})

	if err != nil {
		return models.Task{}, false, err
	}

	return task, projectCompleted, nil
}
