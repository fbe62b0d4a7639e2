package handlers

import (
	"net/http"

	"asumo/models"
	"asumo/services/invoice"
	"asumo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler exposes the billing endpoints around the payment core.
type InvoiceHandler struct {
	Service invoice.InvoiceService
}

// NewInvoiceHandler returns a handler bound to the given invoice service.
func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: svc}
}

// ListOwnInvoicesHandler handles GET /api/invoices.
func (h *InvoiceHandler) ListOwnInvoicesHandler(c *gin.Context) {
	userID := c.GetString("userID")
	invoices, err := h.Service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("Failed to list invoices", zap.String("userId", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// CreateInvoiceHandler handles POST /api/admin/invoices.
func (h *InvoiceHandler) CreateInvoiceHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		logger.Warn("Invalid invoice payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Service.CreateInvoice(c.Request.Context(), inv)
	if err != nil {
		logger.Error("Invoice creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListAllInvoicesHandler handles GET /api/admin/invoices.
func (h *InvoiceHandler) ListAllInvoicesHandler(c *gin.Context) {
	invoices, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list all invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}
