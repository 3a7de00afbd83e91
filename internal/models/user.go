package models

import "time"

type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name  string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`

	// Relationships
	Assignments []TaskAssignment `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
