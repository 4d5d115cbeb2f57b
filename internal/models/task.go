package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

type Task struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"type:varchar(100);not null" json:"category"`
	Location    string `gorm:"type:varchar(255)" json:"location"`
	// Budget is free text and may embed a numeric range ("500-1000").
	Budget       string         `gorm:"type:varchar(100)" json:"budget"`
	Duration     string         `gorm:"type:varchar(100)" json:"duration"`
	Requirements string         `gorm:"type:text" json:"requirements"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedBy    *uint64        `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Images  []TaskImage `gorm:"foreignKey:TaskID" json:"images,omitempty"`
}

// TaskImage is one attached image, stored as an already-encoded data URL.
// Images are ordered by Position and immutable after task creation.
type TaskImage struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	TaskID   uint64 `gorm:"not null;index" json:"task_id"`
	Position int    `gorm:"not null" json:"position"`
	Data     string `gorm:"type:text;not null" json:"data"`
}
