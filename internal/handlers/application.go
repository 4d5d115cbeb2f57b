package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servicehub/marketplace-api/internal/dto"
	apierrors "github.com/servicehub/marketplace-api/internal/errors"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/services"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// SubmitApplication submits an application against a task
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	type SubmitApplicationRequest struct {
		TaskID        uint64 `json:"task_id" binding:"required"`
		Text          string `json:"application_text" binding:"required"`
		ProposedPrice string `json:"proposed_price"`
	}

	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	application, err := h.applicationService.SubmitApplication(services.SubmitApplicationInput{
		TaskID:        req.TaskID,
		Text:          req.Text,
		ProposedPrice: req.ProposedPrice,
		ApplicantID:   middleware.OptionalUserID(c),
	})
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*application))
}

// ListApplications returns the requester's applications. role=owner selects
// applications against the requester's tasks ("applications I review"),
// anything else selects the ones they submitted.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.ListApplicationsInput{}
	if c.Query("role") == "owner" {
		input.TaskOwnerID = &userID
	} else {
		input.ApplicantID = &userID
	}

	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		switch status {
		case models.ApplicationStatusPending, models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
			input.Status = &status
		default:
			apierrors.BadRequest(c, "Invalid status")
			return
		}
	}

	applications, err := h.applicationService.ListApplications(input)
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": dto.ToApplicationDTOs(applications),
	})
}

// AcceptApplication accepts a pending application
func (h *ApplicationHandler) AcceptApplication(c *gin.Context) {
	h.resolveApplication(c, h.applicationService.AcceptApplication)
}

// RejectApplication rejects a pending application
func (h *ApplicationHandler) RejectApplication(c *gin.Context) {
	h.resolveApplication(c, h.applicationService.RejectApplication)
}

func (h *ApplicationHandler) resolveApplication(c *gin.Context, resolve func(uint64, uint64) (*models.Application, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	application, ok := middleware.GetApplication(c)
	if !ok {
		apierrors.InternalError(c, "Application not found in context")
		return
	}

	resolved, err := resolve(application.ID, userID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*resolved))
}

// ResolveTask returns the current task behind an application's snapshot
func (h *ApplicationHandler) ResolveTask(c *gin.Context) {
	application, ok := middleware.GetApplication(c)
	if !ok {
		apierrors.InternalError(c, "Application not found in context")
		return
	}

	task, err := h.applicationService.ResolveTask(application.ID)
	if err != nil {
		respondApplicationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func respondApplicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrApplicationTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotPending):
		apierrors.InvalidStateTransition(c, err.Error())
	case errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
