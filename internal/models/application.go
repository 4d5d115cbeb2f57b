package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a proposal submitted by one user against a task.
//
// TaskTitle and TaskOwnerID are point-in-time snapshots taken at submission;
// they are not kept in sync with the task afterwards. Callers that need the
// current task go through ApplicationService.ResolveTask.
type Application struct {
	ID             uint64            `gorm:"primarykey" json:"id"`
	TaskID         uint64            `gorm:"not null;index" json:"task_id"`
	TaskTitle      string            `gorm:"type:varchar(255);not null" json:"task_title"`
	TaskOwnerID    *uint64           `gorm:"index" json:"task_owner_id"`
	ApplicantID    uint64            `gorm:"not null;index" json:"applicant_id"`
	ApplicantName  string            `gorm:"type:varchar(255);not null" json:"applicant_name"`
	ApplicantEmail string            `gorm:"type:varchar(255);not null" json:"applicant_email"`
	Text           string            `gorm:"type:text;not null" json:"application_text"`
	ProposedPrice  string            `gorm:"type:varchar(100)" json:"proposed_price"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}
