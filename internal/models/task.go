package models

import "time"

const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

type Task struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProjectID   uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	DueDate     string
	Status      string `gorm:"not null"`

	// Relationships
	Project     Project          `gorm:"foreignKey:ProjectID"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}
