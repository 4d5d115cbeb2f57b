package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/servicehub/marketplace-api/internal/constants"
	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrUnknownCategory     = errors.New("category is not one of the available categories")
	ErrTooManyAttachments  = fmt.Errorf("at most %d images can be attached", constants.MaxTaskImages)
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	Category *string
	Page     int
	PageSize int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Category     string
	Location     string
	Budget       string
	Duration     string
	Requirements string
	// Images are already-encoded data URLs, in display order.
	Images []string
	// CreatorID is nil for anonymous postings.
	CreatorID *uint64
}

// ListTasks returns tasks in insertion order. An empty store is an empty
// result, not an error.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Category: input.Category,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with its creator and images
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Images")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates and persists a new task posting. The task starts open;
// there is no update or delete operation afterwards.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if input.Category == "" {
		return nil, ErrCategoryRequired
	}
	if !constants.IsValidCategory(input.Category) {
		return nil, ErrUnknownCategory
	}
	// Reject the whole batch; no image from it may be stored.
	if len(input.Images) > constants.MaxTaskImages {
		return nil, ErrTooManyAttachments
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Location:     input.Location,
		Budget:       input.Budget,
		Duration:     input.Duration,
		Requirements: input.Requirements,
		Status:       models.TaskStatusOpen,
		CreatedBy:    input.CreatorID,
	}

	images := make([]models.TaskImage, len(input.Images))
	for i, data := range input.Images {
		images[i] = models.TaskImage{Data: data}
	}

	if err := s.taskRepo.Create(task, images); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Images")
}
