package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/repository"
	"github.com/servicehub/marketplace-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAccountNotConnected  = errors.New("no PayPal account is connected")
	ErrAccountExists        = errors.New("a PayPal account is already connected")
	ErrAccountEmailRequired = errors.New("PayPal email is required")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrNotPayer             = errors.New("only the payer can act on this payment")
	ErrPaymentResolved      = errors.New("payment is already resolved")
)

// PaymentService records provider outcomes. It never computes or verifies
// amounts or transactions; those come from the external checkout.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
	}
}

// ConnectAccount links a simulated PayPal account to the user. The merchant
// ID is generated locally.
func (s *PaymentService) ConnectAccount(userID uint64, email string) (*models.PayPalAccount, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrAccountEmailRequired
	}

	if _, err := s.paymentRepo.FindAccountByUserID(userID); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}

	merchantID, err := utils.GenerateMerchantID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate merchant ID: %w", err)
	}

	account := &models.PayPalAccount{
		UserID:      userID,
		Email:       email,
		MerchantID:  merchantID,
		Status:      models.PayPalAccountStatusConnected,
		ConnectedAt: time.Now(),
	}

	if err := s.paymentRepo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("failed to connect account: %w", err)
	}

	return account, nil
}

// GetAccount returns the user's account link
func (s *PaymentService) GetAccount(userID uint64) (*models.PayPalAccount, error) {
	account, err := s.paymentRepo.FindAccountByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotConnected
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// DisconnectAccount removes the user's account link
func (s *PaymentService) DisconnectAccount(userID uint64) error {
	if _, err := s.paymentRepo.FindAccountByUserID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotConnected
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	if err := s.paymentRepo.DeleteAccount(userID); err != nil {
		return fmt.Errorf("failed to disconnect account: %w", err)
	}
	return nil
}

// RecordPendingPayment stores a pending payment for an accepted application.
func (s *PaymentService) RecordPendingPayment(payerID uint64, application *models.Application, amount int) error {
	payment := &models.Payment{
		PayerID:       payerID,
		ApplicationID: application.ID,
		TaskTitle:     application.TaskTitle,
		Amount:        amount,
		PayeeEmail:    application.ApplicantEmail,
		Status:        models.PaymentStatusPending,
	}

	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// ListPayments returns the payments owed by a user
func (s *PaymentService) ListPayments(payerID uint64) ([]models.Payment, error) {
	payments, err := s.paymentRepo.ListPaymentsByPayerID(payerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// CaptureInput is the opaque outcome yielded by the checkout provider.
type CaptureInput struct {
	PaymentID     uint64
	ActorID       uint64
	TransactionID string
	Succeeded     bool
}

// CapturePayment records the provider outcome for a pending payment:
// completed with the transaction ID on success, failed otherwise.
func (s *PaymentService) CapturePayment(input CaptureInput) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(input.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	if payment.PayerID != input.ActorID {
		return nil, ErrNotPayer
	}
	if payment.Status == models.PaymentStatusCompleted || payment.Status == models.PaymentStatusFailed {
		return nil, ErrPaymentResolved
	}

	if input.Succeeded {
		payment.Status = models.PaymentStatusCompleted
		payment.TransactionID = input.TransactionID
	} else {
		payment.Status = models.PaymentStatusFailed
	}

	if err := s.paymentRepo.UpdatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return payment, nil
}
