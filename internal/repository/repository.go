package repository

import (
	"github.com/servicehub/marketplace-api/internal/models"
)

// TaskRepository defines the interface for task data access. It is the single
// accessor for the task partition; every read and write funnels through it.
type TaskRepository interface {
	// Create creates a task together with its image attachments atomically
	Create(task *models.Task, images []models.TaskImage) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks in insertion order, optionally filtered
	List(filter TaskFilter) ([]models.Task, int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status    *models.TaskStatus
	Category  *string
	CreatedBy *uint64
	Page      int
	PageSize  int
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(application *models.Application) error

	// FindByID finds an application by ID
	FindByID(id uint64, preload ...string) (*models.Application, error)

	// List retrieves applications matching the filter, insertion order
	List(filter ApplicationFilter) ([]models.Application, error)

	// UpdateStatus writes a new status for one application
	UpdateStatus(id uint64, status models.ApplicationStatus) error
}

// ApplicationFilter holds filtering options for listing applications
type ApplicationFilter struct {
	TaskOwnerID *uint64
	ApplicantID *uint64
	TaskID      *uint64
	Status      *models.ApplicationStatus
}

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	// Create creates a new review
	Create(review *models.Review) error

	// FindByID finds a review by ID
	FindByID(id uint64) (*models.Review, error)

	// ListByUserID lists all reviews attached to a profile
	ListByUserID(userID uint64) ([]models.Review, error)

	// Delete removes a review
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// PaymentRepository defines the interface for the payment partitions
// (provider account links and recorded payments)
type PaymentRepository interface {
	// CreateAccount stores a provider account link
	CreateAccount(account *models.PayPalAccount) error

	// FindAccountByUserID finds the account link for a user
	FindAccountByUserID(userID uint64) (*models.PayPalAccount, error)

	// DeleteAccount removes the account link for a user
	DeleteAccount(userID uint64) error

	// CreatePayment records a new pending payment
	CreatePayment(payment *models.Payment) error

	// FindPaymentByID finds a payment by ID
	FindPaymentByID(id uint64) (*models.Payment, error)

	// ListPaymentsByPayerID lists payments owed by a user
	ListPaymentsByPayerID(payerID uint64) ([]models.Payment, error)

	// UpdatePayment updates a payment record
	UpdatePayment(payment *models.Payment) error
}
