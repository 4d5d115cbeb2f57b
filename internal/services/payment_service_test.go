package services

import (
	"testing"

	"github.com/servicehub/marketplace-api/internal/models"
	"github.com/servicehub/marketplace-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PaymentServiceTestSuite defines the test suite for PaymentService
type PaymentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *PaymentService
}

// SetupTest runs before each test
func (suite *PaymentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.PayPalAccount{},
		&models.Payment{},
	)
	suite.Require().NoError(err)

	suite.service = NewPaymentService(repository.NewPaymentRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *PaymentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PaymentServiceTestSuite) createPendingPayment(payerID uint64) *models.Payment {
	application := &models.Application{
		ID:             1,
		TaskTitle:      "Website Redesign",
		ApplicantEmail: "freelancer@example.com",
	}
	err := suite.service.RecordPendingPayment(payerID, application, 150)
	suite.Require().NoError(err)

	payments, err := suite.service.ListPayments(payerID)
	suite.Require().NoError(err)
	suite.Require().Len(payments, 1)
	return &payments[0]
}

func (suite *PaymentServiceTestSuite) TestConnectAccount_Success() {
	account, err := suite.service.ConnectAccount(1, "owner@example.com")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.PayPalAccountStatusConnected, account.Status)
	assert.NotEmpty(suite.T(), account.MerchantID)
	assert.False(suite.T(), account.ConnectedAt.IsZero())
}

func (suite *PaymentServiceTestSuite) TestConnectAccount_EmailRequired() {
	_, err := suite.service.ConnectAccount(1, "  ")

	assert.ErrorIs(suite.T(), err, ErrAccountEmailRequired)
}

func (suite *PaymentServiceTestSuite) TestConnectAccount_AlreadyConnected() {
	_, err := suite.service.ConnectAccount(1, "owner@example.com")
	suite.Require().NoError(err)

	_, err = suite.service.ConnectAccount(1, "second@example.com")
	assert.ErrorIs(suite.T(), err, ErrAccountExists)
}

func (suite *PaymentServiceTestSuite) TestDisconnectAccount() {
	_, err := suite.service.ConnectAccount(1, "owner@example.com")
	suite.Require().NoError(err)

	err = suite.service.DisconnectAccount(1)
	suite.Require().NoError(err)

	_, err = suite.service.GetAccount(1)
	assert.ErrorIs(suite.T(), err, ErrAccountNotConnected)
}

func (suite *PaymentServiceTestSuite) TestDisconnectAccount_NotConnected() {
	err := suite.service.DisconnectAccount(1)

	assert.ErrorIs(suite.T(), err, ErrAccountNotConnected)
}

func (suite *PaymentServiceTestSuite) TestCapturePayment_Success() {
	payment := suite.createPendingPayment(1)

	captured, err := suite.service.CapturePayment(CaptureInput{
		PaymentID:     payment.ID,
		ActorID:       1,
		TransactionID: "TX-12345",
		Succeeded:     true,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.PaymentStatusCompleted, captured.Status)
	assert.Equal(suite.T(), "TX-12345", captured.TransactionID)
}

func (suite *PaymentServiceTestSuite) TestCapturePayment_Failure() {
	payment := suite.createPendingPayment(1)

	captured, err := suite.service.CapturePayment(CaptureInput{
		PaymentID: payment.ID,
		ActorID:   1,
		Succeeded: false,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.PaymentStatusFailed, captured.Status)
	assert.Empty(suite.T(), captured.TransactionID)
}

func (suite *PaymentServiceTestSuite) TestCapturePayment_OnlyPayer() {
	payment := suite.createPendingPayment(1)

	_, err := suite.service.CapturePayment(CaptureInput{
		PaymentID: payment.ID,
		ActorID:   2,
		Succeeded: true,
	})

	assert.ErrorIs(suite.T(), err, ErrNotPayer)
}

func (suite *PaymentServiceTestSuite) TestCapturePayment_AlreadyResolved() {
	payment := suite.createPendingPayment(1)

	_, err := suite.service.CapturePayment(CaptureInput{
		PaymentID: payment.ID,
		ActorID:   1,
		Succeeded: true,
	})
	suite.Require().NoError(err)

	_, err = suite.service.CapturePayment(CaptureInput{
		PaymentID: payment.ID,
		ActorID:   1,
		Succeeded: false,
	})
	assert.ErrorIs(suite.T(), err, ErrPaymentResolved)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
