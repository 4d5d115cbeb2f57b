package dto

import (
	"time"

	"github.com/servicehub/marketplace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	Location     string            `json:"location"`
	Budget       string            `json:"budget"`
	Duration     string            `json:"duration"`
	Requirements string            `json:"requirements"`
	Status       models.TaskStatus `json:"status"`
	CreatedBy    *uint64           `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	Images       []string          `json:"images"`
	Creator      *UserDTO          `json:"creator,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a user model to its response shape
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Location: user.Location,
		Bio:      user.Bio,
	}
}

// ToTaskDTO converts a task model to its response shape
func ToTaskDTO(task models.Task) TaskDTO {
	images := make([]string, len(task.Images))
	for i, img := range task.Images {
		images[i] = img.Data
	}

	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Category:     task.Category,
		Location:     task.Location,
		Budget:       task.Budget,
		Duration:     task.Duration,
		Requirements: task.Requirements,
		Status:       task.Status,
		CreatedBy:    task.CreatedBy,
		CreatedAt:    task.CreatedAt,
		Images:       images,
	}

	if task.Creator != nil {
		creator := ToUserDTO(*task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskDTOs converts a slice of task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
