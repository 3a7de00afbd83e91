package services

import (
	"errors"

	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

// CompleteProjectIfDone re-reads every task of the project and forces the
// project's status to Completed when the project has at least one task and
// all of them are Completed, regardless of the project's previous status.
// Projects with zero tasks never auto-complete. It must run inside the same
// transaction as the task update that triggered it.
func CompleteProjectIfDone(tx *gorm.DB, projectID uint) (bool, error) {
	var total int64

	if err := tx.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return false, NewDataAccessError(err)
	}

	if total == 0 {
		return false, nil
	}

	var completed int64

	if err := tx.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return false, NewDataAccessError(err)
	}

	if completed != total {
		return false, nil
	}

	if err := tx.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("status", models.ProjectStatusCompleted).Error; err != nil {
		return false, NewDataAccessError(err)
	}

	return true, nil
}

// DeleteProject removes a project together with its tasks and their
// assignments as one transaction. Assignments go first, then tasks, then the
// project row, so no reference to an already-deleted row is ever visible.
func DeleteProject(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "project", ID: id}
			}
			return NewDataAccessError(err)
		}

		var taskIDs []uint

		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return NewDataAccessError(err)
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
				return NewDataAccessError(err)
			}

			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return NewDataAccessError(err)
			}
		}

		if err := tx.Delete(&project).Error; err != nil {
			return NewDataAccessError(err)
		}

		return nil
	})
}

// DeleteTask removes a task and its assignments as one transaction.
func DeleteTask(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var task models.Task

		if err := tx.First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "task", ID: id}
			}
			return NewDataAccessError(err)
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return NewDataAccessError(err)
		}

		if err := tx.Delete(&task).Error; err != nil {
			return NewDataAccessError(err)
		}

		return nil
	})
}

// DeleteUser removes a user and every assignment referencing them as one
// transaction.
func DeleteUser(gdb *gorm.DB, id uint) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "user", ID: id}
			}
			return NewDataAccessError(err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return NewDataAccessError(err)
		}

		if err := tx.Delete(&user).Error; err != nil {
			return NewDataAccessError(err)
		}

		return nil
	})
}
