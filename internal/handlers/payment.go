package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/servicehub/marketplace-api/internal/errors"
	"github.com/servicehub/marketplace-api/internal/middleware"
	"github.com/servicehub/marketplace-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GetAccount returns the requester's provider account link
func (h *PaymentHandler) GetAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	account, err := h.paymentService.GetAccount(userID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// ConnectAccount links a simulated PayPal account to the requester
func (h *PaymentHandler) ConnectAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ConnectAccountRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.paymentService.ConnectAccount(userID, req.Email)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// DisconnectAccount removes the requester's provider account link
func (h *PaymentHandler) DisconnectAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.paymentService.DisconnectAccount(userID); err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PayPal account disconnected",
	})
}

// ListPayments returns the payments owed by the requester
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	payments, err := h.paymentService.ListPayments(userID)
	if err != nil {
		apierrors.StorageFailure(c, "Failed to fetch payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// CapturePayment records the provider's checkout outcome for a payment
func (h *PaymentHandler) CapturePayment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid payment ID")
		return
	}

	type CaptureRequest struct {
		TransactionID string `json:"transaction_id"`
		Succeeded     *bool  `json:"succeeded" binding:"required"`
	}

	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.CapturePayment(services.CaptureInput{
		PaymentID:     paymentID,
		ActorID:       userID,
		TransactionID: req.TransactionID,
		Succeeded:     *req.Succeeded,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccountEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountExists):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAccountNotConnected),
		errors.Is(err, services.ErrPaymentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPayer):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrPaymentResolved):
		apierrors.InvalidStateTransition(c, err.Error())
	default:
		apierrors.StorageFailure(c, "")
	}
}
