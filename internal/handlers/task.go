package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/marketplace-api/internal/dto"
	apierrors "github.com/servicehub/marketplace-api/internal/errors"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/query"
	"github.com/servicehub/marketplace-api/internal/services"
	"github.com/servicehub/marketplace-api/internal/utils"
)

type TaskHandler struct {
	taskService      *services.TaskService
	assistantService *services.AssistantService
}

func NewTaskHandler(taskService *services.TaskService, assistantService *services.AssistantService) *TaskHandler {
	return &TaskHandler{
		taskService:      taskService,
		assistantService: assistantService,
	}
}

// ListTasks returns tasks matching the search/location/max_price criteria.
// Search filtering happens in the pure query layer over the listed set, so
// its semantics match the other read paths exactly.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{})
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch tasks")
		return
	}

	filter := query.Filter{
		SearchTerm: c.Query("search"),
		Location:   c.Query("location"),
	}
	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid max_price")
			return
		}
		filter.MaxPrice = &maxPrice
	}

	matched := query.FilterTasks(tasks, filter)

	params := utils.GetPaginationParams(c)
	page := paginateTasks(matched, params)

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(page),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: int64(len(matched)),
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			apierrors.NotFound(c, "Task not found")
			return
		}
		apierrors.StorageFailure(c, "Failed to fetch task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task posting. Anonymous creation is allowed; the
// creator is stamped only when a session identity is present.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string   `json:"title" binding:"required"`
		Description  string   `json:"description" binding:"required"`
		Category     string   `json:"category" binding:"required"`
		Location     string   `json:"location"`
		Budget       string   `json:"budget"`
		Duration     string   `json:"duration"`
		Requirements string   `json:"requirements"`
		Images       []string `json:"images"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		Budget:       req.Budget,
		Duration:     req.Duration,
		Requirements: req.Requirements,
		Images:       req.Images,
		CreatorID:    middleware.OptionalUserID(c),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GroupedTasks returns all tasks grouped by their literal category string
func (h *TaskHandler) GroupedTasks(c *gin.Context) {
	tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{})
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch tasks")
		return
	}

	grouped := query.GroupByCategory(tasks)

	groups := make([]gin.H, 0, len(grouped.Categories))
	for _, category := range grouped.Categories {
		groups = append(groups, gin.H{
			"category": category,
			"tasks":    dto.ToTaskDTOs(grouped.Tasks[category]),
		})
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// PartitionTasks splits all tasks into the requester's own postings and
// everyone else's. Without identity everything lands in "others".
func (h *TaskHandler) PartitionTasks(c *gin.Context) {
	tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{})
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch tasks")
		return
	}

	partition := query.PartitionByOwner(tasks, middleware.OptionalUserID(c))

	c.JSON(http.StatusOK, gin.H{
		"mine":   dto.ToTaskDTOs(partition.Mine),
		"others": dto.ToTaskDTOs(partition.Others),
	})
}

// SuggestDraft generates a task draft from free text using the assistant
func (h *TaskHandler) SuggestDraft(c *gin.Context) {
	type SuggestDraftRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.assistantService == nil {
		apierrors.ServiceUnavailable(c, "Assistant is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	draft, err := h.assistantService.SuggestTaskDraft(context.Background(), req.Text)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate draft")
		return
	}

	c.JSON(http.StatusOK, draft)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrUnknownCategory):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTooManyAttachments):
		apierrors.TooManyAttachments(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}

func paginateTasks(tasks []models.Task, params utils.PaginationParams) []models.Task {
	if params.Offset >= len(tasks) {
		return []models.Task{}
	}
	end := params.Offset + params.Limit
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[params.Offset:end]
}
