package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityHigh TaskPriority = "high"
	PriorityLow  TaskPriority = "low"
)

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Content      string         `gorm:"type:text" json:"content"`
	Priority     TaskPriority   `gorm:"type:varchar(10)" json:"priority"`
	Completed    bool           `gorm:"not null;default:false" json:"completed"`
	DueDate      *time.Time     `json:"dueDate"`
	ReminderDate *time.Time     `gorm:"index" json:"reminderDate"`
	ReminderSent bool           `gorm:"not null;default:false" json:"reminderSent"`
	UserID       uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
