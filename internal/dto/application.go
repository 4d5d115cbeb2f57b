package dto

import (
	"time"

	"github.com/servicehub/marketplace-api/internal/models"
)

// ApplicationDTO represents an application in API responses. TaskTitle and
// TaskOwnerID are the submission-time snapshots, not current task state.
type ApplicationDTO struct {
	ID             uint64                   `json:"id"`
	TaskID         uint64                   `json:"task_id"`
	TaskTitle      string                   `json:"task_title"`
	TaskOwnerID    *uint64                  `json:"task_owner_id"`
	ApplicantID    uint64                   `json:"applicant_id"`
	ApplicantName  string                   `json:"applicant_name"`
	ApplicantEmail string                   `json:"applicant_email"`
	Text           string                   `json:"application_text"`
	ProposedPrice  string                   `json:"proposed_price,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
}

// ToApplicationDTO converts an application model to its response shape
func ToApplicationDTO(application models.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:             application.ID,
		TaskID:         application.TaskID,
		TaskTitle:      application.TaskTitle,
		TaskOwnerID:    application.TaskOwnerID,
		ApplicantID:    application.ApplicantID,
		ApplicantName:  application.ApplicantName,
		ApplicantEmail: application.ApplicantEmail,
		Text:           application.Text,
		ProposedPrice:  application.ProposedPrice,
		Status:         application.Status,
		CreatedAt:      application.CreatedAt,
	}
}

// ToApplicationDTOs converts a slice of application models
func ToApplicationDTOs(applications []models.Application) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(applications))
	for i, a := range applications {
		dtos[i] = ToApplicationDTO(a)
	}
	return dtos
}
