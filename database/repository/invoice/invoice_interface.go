package invoiceRepo

import (
	"context"

	"asumo/models"
)

// InvoiceRepository is the invoice record store consumed by the payment
// subsystem and the admin billing workflow. Every query and mutation applies
// the owning-user filter server-side; client-supplied ids alone never select
// a row.
type InvoiceRepository interface {
	Create(ctx context.Context, inv models.Invoice) (*models.Invoice, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error)
	ListAll(ctx context.Context) ([]models.Invoice, error)

	// FindPayableByOwner returns the caller's invoices whose status is not
	// yet paid, optionally restricted to an explicit id set. An empty ids
	// slice means "every unpaid invoice of this owner".
	FindPayableByOwner(ctx context.Context, ownerID string, ids []string) ([]models.Invoice, error)

	// MarkPaid transitions the given invoices to paid in one conditional
	// bulk update (id in set AND owner matches). Re-applying it to already
	// paid invoices is a no-op, which is what makes verification idempotent.
	MarkPaid(ctx context.Context, ownerID string, ids []string) (int64, error)
}
