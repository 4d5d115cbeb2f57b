package models

import (
	"time"

	"gorm.io/gorm"
)

type PayPalAccountStatus string

const (
	PayPalAccountStatusConnected    PayPalAccountStatus = "connected"
	PayPalAccountStatusPending      PayPalAccountStatus = "pending"
	PayPalAccountStatusDisconnected PayPalAccountStatus = "disconnected"
)

// PayPalAccount is the simulated provider link for one user. The merchant ID
// is generated locally; nothing is verified against the provider.
type PayPalAccount struct {
	ID          uint64              `gorm:"primarykey" json:"id"`
	UserID      uint64              `gorm:"uniqueIndex;not null" json:"user_id"`
	Email       string              `gorm:"type:varchar(255);not null" json:"email"`
	MerchantID  string              `gorm:"type:varchar(50);not null" json:"merchant_id"`
	Status      PayPalAccountStatus `gorm:"type:varchar(20);not null" json:"status"`
	ConnectedAt time.Time           `json:"connected_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Payment records the outcome of a checkout. The amount and transaction ID
// come from the accepted application and the provider callback; the server
// never computes or verifies either.
type Payment struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	PayerID       uint64         `gorm:"not null;index" json:"payer_id"`
	ApplicationID uint64         `gorm:"not null;index" json:"application_id"`
	TaskTitle     string         `gorm:"type:varchar(255);not null" json:"task_title"`
	Amount        int            `gorm:"not null" json:"amount"`
	PayeeEmail    string         `gorm:"type:varchar(255);not null" json:"payee_email"`
	Status        PaymentStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID string         `gorm:"type:varchar(100)" json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
