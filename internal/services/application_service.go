package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/query"
	"github.com/servicehub/marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrApplicationTextRequired = errors.New("application text is required")
	ErrAuthenticationRequired  = errors.New("authentication required")
	ErrNotTaskOwner            = errors.New("only the task owner can resolve this application")
	ErrNotPending              = errors.New("application is not pending")
)

// ApplicationService handles application submission and the status lifecycle
type ApplicationService struct {
	applicationRepo repository.ApplicationRepository
	taskRepo        repository.TaskRepository
	userRepo        repository.UserRepository
	paymentService  *PaymentService
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	paymentService *PaymentService,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		paymentService:  paymentService,
	}
}

// SubmitApplicationInput represents input for submitting an application
type SubmitApplicationInput struct {
	TaskID        uint64
	Text          string
	ProposedPrice string
	// ApplicantID is nil when no identity is present; submission then fails.
	ApplicantID *uint64
}

// ListApplicationsInput represents filters for listing applications
type ListApplicationsInput struct {
	TaskOwnerID *uint64
	ApplicantID *uint64
	Status      *models.ApplicationStatus
}

// SubmitApplication validates and stores a new application. The task title
// and owner are copied at submission time; they can drift from the task
// afterwards and are not corrected.
func (s *ApplicationService) SubmitApplication(input SubmitApplicationInput) (*models.Application, error) {
	if input.ApplicantID == nil {
		return nil, ErrAuthenticationRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrApplicationTextRequired
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	applicant, err := s.userRepo.FindByID(*input.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthenticationRequired
		}
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}

	application := &models.Application{
		TaskID:         task.ID,
		TaskTitle:      task.Title,
		TaskOwnerID:    task.CreatedBy,
		ApplicantID:    applicant.ID,
		ApplicantName:  applicant.Name,
		ApplicantEmail: applicant.Email,
		Text:           input.Text,
		ProposedPrice:  input.ProposedPrice,
		Status:         models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return application, nil
}

// ListApplications returns applications matching the filter
func (s *ApplicationService) ListApplications(input ListApplicationsInput) ([]models.Application, error) {
	applications, err := s.applicationRepo.List(repository.ApplicationFilter{
		TaskOwnerID: input.TaskOwnerID,
		ApplicantID: input.ApplicantID,
		Status:      input.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// AcceptApplication transitions a pending application to accepted. Accepted
// is terminal. When the application carries a numeric proposed price, a
// pending payment is recorded for the task owner.
func (s *ApplicationService) AcceptApplication(applicationID, actorID uint64) (*models.Application, error) {
	application, err := s.resolvePending(applicationID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(application.ID, models.ApplicationStatusAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept application: %w", err)
	}
	application.Status = models.ApplicationStatusAccepted

	if amount := query.MaxBudget(application.ProposedPrice); amount > 0 {
		if err := s.paymentService.RecordPendingPayment(actorID, application, amount); err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
	}

	return application, nil
}

// RejectApplication transitions a pending application to rejected. Rejected
// is terminal.
func (s *ApplicationService) RejectApplication(applicationID, actorID uint64) (*models.Application, error) {
	application, err := s.resolvePending(applicationID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.applicationRepo.UpdateStatus(application.ID, models.ApplicationStatusRejected); err != nil {
		return nil, fmt.Errorf("failed to reject application: %w", err)
	}
	application.Status = models.ApplicationStatusRejected

	return application, nil
}

// ResolveTask returns the current task behind an application's snapshot
// fields, for callers that need current truth rather than the copy taken at
// submission time.
func (s *ApplicationService) ResolveTask(applicationID uint64) (*models.Task, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	task, err := s.taskRepo.FindByID(application.TaskID, "Creator", "Images")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// GetApplication returns one application by ID
func (s *ApplicationService) GetApplication(applicationID uint64) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return application, nil
}

// resolvePending loads an application and verifies the actor may resolve it
// and that it is still pending. Accept and reject share these checks.
func (s *ApplicationService) resolvePending(applicationID, actorID uint64) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if application.TaskOwnerID == nil || *application.TaskOwnerID != actorID {
		return nil, ErrNotTaskOwner
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, ErrNotPending
	}

	return application, nil
}
