package handlers

import (
	"net/http"
	"strings"

	"asumo/config"
	"asumo/models"
	"asumo/services/payment"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the two reconciliation endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler returns a handler bound to the given payment service.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// bearerFromHeader extracts the raw bearer credential; the payment service
// resolves and rejects it itself, so an absent header is passed through as
// the empty string.
func bearerFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// requestOrigin derives the redirect origin from the calling page, falling
// back to the configured portal address.
func requestOrigin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	return config.AppConfig.PortalBaseURL
}

// CreatePaymentSessionHandler handles POST /api/payments/create-payment-session.
// Any failure maps to a generic 500 with a human-readable message; retrying
// is the client's business.
func (h *PaymentHandler) CreatePaymentSessionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreatePaymentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Invalid payment session request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.Service.CreatePaymentSession(c.Request.Context(), bearerFromHeader(c), req, requestOrigin(c))
	if err != nil {
		logger.Error("Payment session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.CreatePaymentSessionResponse{
		URL:       res.URL,
		SessionID: res.SessionID,
	})
}

// VerifyPaymentHandler handles POST /api/payments/verify-payment. A session
// the gateway has not collected yet is a normal 200 with success=false so
// polling clients can tell "not yet paid" from "broken".
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Invalid payment verification request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.Service.VerifyPaymentSession(c.Request.Context(), bearerFromHeader(c), req.SessionID)
	if err != nil {
		logger.Error("Payment verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !res.Paid {
		c.JSON(http.StatusOK, models.VerifyPaymentResponse{
			Success: false,
			Message: "Payment has not been completed",
		})
		return
	}

	c.JSON(http.StatusOK, models.VerifyPaymentResponse{
		Success:    true,
		Message:    "Invoices marked as paid",
		InvoiceIDs: res.InvoiceIDs,
	})
}
