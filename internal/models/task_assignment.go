package models

// TaskAssignment records that a user is responsible for a task.
// The composite primary key keeps each (task, user) pair unique.
type TaskAssignment struct {
	TaskID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID uint `gorm:"primaryKey;autoIncrement:false"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID"`
	User User `gorm:"foreignKey:UserID"`
}
