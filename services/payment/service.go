package payment

import (
	"context"

	"asumo/models"

	"go.uber.org/zap"
)

// Metadata keys stamped onto every checkout session at creation time. They
// are the only source of the invoice selection during verification; nothing
// the client sends at that point is trusted.
const (
	MetadataUserID     = "user_id"
	MetadataInvoiceIDs = "invoice_ids"
)

// Portal operating locale and currency.
const (
	CheckoutLocale   = "fi"
	CheckoutCurrency = "eur"
)

// AuthVerifier resolves a bearer credential to a verified identity.
type AuthVerifier interface {
	VerifyBearer(ctx context.Context, bearer string) (models.Identity, error)
}

// InvoiceStore is the slice of the invoice repository the payment subsystem
// needs: the payable query and the idempotent bulk mark-paid mutation.
type InvoiceStore interface {
	FindPayableByOwner(ctx context.Context, ownerID string, ids []string) ([]models.Invoice, error)
	MarkPaid(ctx context.Context, ownerID string, ids []string) (int64, error)
}

// CheckoutLineItem is one priced line of a checkout session.
type CheckoutLineItem struct {
	Name        string
	AmountMinor int64
}

// CheckoutSessionParams describes a session to be created at the gateway.
type CheckoutSessionParams struct {
	CustomerID    string // reuse an existing gateway customer when set
	CustomerEmail string
	LineItems     []CheckoutLineItem
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the gateway's view of a session. PaymentStatus is
// whatever the gateway reports; only "paid" is actionable here.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      map[string]string
}

// PaymentStatusPaid is the only gateway payment status that triggers the
// invoice transition.
const PaymentStatusPaid = "paid"

// Gateway is the payment gateway capability: create a session, re-fetch a
// session, look up a customer by email.
type Gateway interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// SessionResult is the redirect target returned by the initiator.
type SessionResult struct {
	URL       string
	SessionID string
}

// VerifyResult is the reconciliation outcome. Paid false is a normal
// pending/abandoned outcome, not an error.
type VerifyResult struct {
	Paid       bool
	InvoiceIDs []string
}

// PaymentService exposes the two reconciliation operations.
type PaymentService interface {
	CreatePaymentSession(ctx context.Context, bearer string, req models.CreatePaymentSessionRequest, origin string) (*SessionResult, error)
	VerifyPaymentSession(ctx context.Context, bearer, sessionID string) (*VerifyResult, error)
}

// DefaultPaymentService is the production implementation, with all three
// collaborators injected so tests can substitute in-memory fakes.
type DefaultPaymentService struct {
	Auth     AuthVerifier
	Invoices InvoiceStore
	Gateway  Gateway
	Logger   *zap.Logger
}

// NewDefaultPaymentService wires up a payment service.
func NewDefaultPaymentService(auth AuthVerifier, invoices InvoiceStore, gateway Gateway, logger *zap.Logger) *DefaultPaymentService {
	return &DefaultPaymentService{
		Auth:     auth,
		Invoices: invoices,
		Gateway:  gateway,
		Logger:   logger,
	}
}
