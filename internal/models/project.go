package models

import "time"

const (
	ProjectStatusActive    = "Active"
	ProjectStatusCompleted = "Completed"
	ProjectStatusOnHold    = "On Hold"
)

type Project struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name        string `gorm:"not null"`
	Description string
	StartDate   string `gorm:"not null"`
	EndDate     string
	Status      string `gorm:"not null"`

	// Relationships
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func IsValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}
