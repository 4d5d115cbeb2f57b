package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is attached to a user profile. The profile owner creates and
// deletes reviews freely; there is no moderation step.
type Review struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	UserID       uint64         `gorm:"not null;index" json:"user_id"`
	Rating       int            `gorm:"not null" json:"rating"`
	Comment      string         `gorm:"type:text;not null" json:"comment"`
	Author       string         `gorm:"type:varchar(255);not null" json:"author"`
	ProjectTitle string         `gorm:"type:varchar(255);not null" json:"project_title"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
