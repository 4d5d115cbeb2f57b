package repository

import (
	"github.com/servicehub/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// CreateAccount stores a provider account link
func (r *GormPaymentRepository) CreateAccount(account *models.PayPalAccount) error {
	return r.db.Create(account).Error
}

// FindAccountByUserID finds the account link for a user
func (r *GormPaymentRepository) FindAccountByUserID(userID uint64) (*models.PayPalAccount, error) {
	var account models.PayPalAccount
	if err := r.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount removes the account link for a user
func (r *GormPaymentRepository) DeleteAccount(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.PayPalAccount{}).Error
}

// CreatePayment records a new pending payment
func (r *GormPaymentRepository) CreatePayment(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// FindPaymentByID finds a payment by ID
func (r *GormPaymentRepository) FindPaymentByID(id uint64) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPaymentsByPayerID lists payments owed by a user in insertion order
func (r *GormPaymentRepository) ListPaymentsByPayerID(payerID uint64) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Where("payer_id = ?", payerID).
		Order("id ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePayment updates a payment record
func (r *GormPaymentRepository) UpdatePayment(payment *models.Payment) error {
	return r.db.Save(payment).Error
}
