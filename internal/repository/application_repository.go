package repository

import (
	"github.com/servicehub/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(application *models.Application) error {
	return r.db.Create(application).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var application models.Application
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&application, id).Error; err != nil {
		return nil, err
	}

	return &application, nil
}

// List retrieves applications matching the filter in insertion order
func (r *GormApplicationRepository) List(filter ApplicationFilter) ([]models.Application, error) {
	var applications []models.Application

	query := r.db.Model(&models.Application{})

	if filter.TaskOwnerID != nil {
		query = query.Where("applications.task_owner_id = ?", *filter.TaskOwnerID)
	}
	if filter.ApplicantID != nil {
		query = query.Where("applications.applicant_id = ?", *filter.ApplicantID)
	}
	if filter.TaskID != nil {
		query = query.Where("applications.task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("applications.status = ?", *filter.Status)
	}

	if err := query.Order("applications.id ASC").Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

// UpdateStatus writes a new status for one application
func (r *GormApplicationRepository) UpdateStatus(id uint64, status models.ApplicationStatus) error {
	return r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}
