package invoice

import (
	"context"
	"fmt"

	invoiceRepo "asumo/database/repository/invoice"
	userRepo "asumo/database/repository/user"
	"asumo/models"
	"asumo/services/notification"
	"asumo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// InvoiceService covers the admin billing workflow and the resident's own
// invoice view. Status transitions to paid are not part of this service;
// only the payment verifier performs those.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, inv models.Invoice) (*models.Invoice, error)
	ListOwn(ctx context.Context, userID string) ([]models.Invoice, error)
	ListAll(ctx context.Context) ([]models.Invoice, error)
}

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	Repo     invoiceRepo.InvoiceRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
}

// CreateInvoice validates and stores a new invoice, then queues the
// new-invoice email for the resident. Amounts must be expressible in cents;
// the status is always created as unpaid regardless of input.
func (s *DefaultInvoiceService) CreateInvoice(ctx context.Context, inv models.Invoice) (*models.Invoice, error) {
	if inv.UserID == "" {
		return nil, fmt.Errorf("invoice needs an owning resident")
	}
	if inv.Title == "" {
		return nil, fmt.Errorf("invoice needs a title")
	}
	if _, err := utils.MinorUnits(inv.Amount); err != nil {
		return nil, fmt.Errorf("invalid invoice amount: %w", err)
	}
	if inv.DueDate.IsZero() {
		return nil, fmt.Errorf("invoice needs a due date")
	}

	owner, err := s.Users.GetByIDWithProjection(ctx, inv.UserID, bson.M{"id": 1, "email": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invoice owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("resident %s not found", inv.UserID)
	}

	inv.Status = models.InvoiceStatusUnpaid
	created, err := s.Repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to store invoice: %w", err)
	}

	// Notification failure must not roll back billing; the invoice is
	// visible in the portal either way.
	if err := s.Notifier.QueueInvoiceEmail(ctx, owner.Email, *created); err != nil {
		utils.GetLogger().Warn("failed to queue invoice email",
			zap.String("invoiceId", created.ID), zap.Error(err))
	}

	return created, nil
}

// ListOwn returns the caller's invoices.
func (s *DefaultInvoiceService) ListOwn(ctx context.Context, userID string) ([]models.Invoice, error) {
	return s.Repo.ListByOwner(ctx, userID)
}

// ListAll returns every invoice, for the admin billing view.
func (s *DefaultInvoiceService) ListAll(ctx context.Context) ([]models.Invoice, error) {
	return s.Repo.ListAll(ctx)
}
