package payment

import (
	"fmt"
	"sort"
	"strings"

	"context"

	"asumo/models"
	"asumo/utils"

	"go.uber.org/zap"
)

// SelectionAll is the sentinel invoice id meaning "every unpaid invoice
// owned by the caller". It overrides any explicit id list.
const SelectionAll = "all"

// CreatePaymentSession aggregates the caller's unpaid invoices into a single
// gateway checkout session and returns the redirect target. It mutates
// nothing locally; the only durable trace of this call is the session's
// metadata at the gateway.
func (s *DefaultPaymentService) CreatePaymentSession(ctx context.Context, bearer string, req models.CreatePaymentSessionRequest, origin string) (*SessionResult, error) {
	log := s.Logger.With(zap.String("op", "create_payment_session"))

	if bearer == "" {
		return nil, ErrMissingCredential
	}
	identity, err := s.Auth.VerifyBearer(ctx, bearer)
	if err != nil {
		log.Warn("bearer rejected", zap.String("step", "authenticate"), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if identity.Email == "" {
		log.Warn("identity has no email", zap.String("step", "authenticate"))
		return nil, fmt.Errorf("%w: identity has no email", ErrUnauthenticated)
	}
	log.Info("caller authenticated", zap.String("step", "authenticate"), zap.String("userId", identity.UserID))

	// "all" (or nothing) defers the selection entirely to the payable query.
	var candidateIDs []string
	switch {
	case req.InvoiceID == SelectionAll:
	case req.InvoiceID != "":
		candidateIDs = []string{req.InvoiceID}
	default:
		candidateIDs = req.InvoiceIDs
	}

	invoices, err := s.Invoices.FindPayableByOwner(ctx, identity.UserID, candidateIDs)
	if err != nil {
		log.Error("invoice query failed", zap.String("step", "fetch_invoices"), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	// The backstop against zero-amount sessions, already-paid retries and
	// ids that belong to somebody else: all of those leave this set empty.
	if len(invoices) == 0 {
		log.Warn("nothing payable", zap.String("step", "fetch_invoices"), zap.Int("requested", len(candidateIDs)))
		return nil, ErrNoPayableInvoices
	}
	log.Info("invoices selected", zap.String("step", "fetch_invoices"), zap.Int("count", len(invoices)))

	customerID, err := s.Gateway.FindCustomerByEmail(ctx, identity.Email)
	if err != nil {
		log.Error("customer lookup failed", zap.String("step", "find_customer"), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	lineItems := make([]CheckoutLineItem, 0, len(invoices))
	invoiceIDs := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		cents, err := utils.MinorUnits(inv.Amount)
		if err != nil {
			log.Error("unrepresentable amount", zap.String("step", "build_line_items"),
				zap.String("invoiceId", inv.ID), zap.Error(err))
			return nil, fmt.Errorf("invoice %s: %w", inv.ID, err)
		}
		lineItems = append(lineItems, CheckoutLineItem{
			Name:        lineItemName(inv),
			AmountMinor: cents,
		})
		invoiceIDs = append(invoiceIDs, inv.ID)
	}
	sort.Strings(invoiceIDs)

	session, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerID:    customerID,
		CustomerEmail: identity.Email,
		LineItems:     lineItems,
		Metadata: map[string]string{
			MetadataUserID:     identity.UserID,
			MetadataInvoiceIDs: strings.Join(invoiceIDs, ","),
		},
		SuccessURL: origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/payment-cancelled",
	})
	if err != nil {
		log.Error("session creation failed", zap.String("step", "create_session"), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	log.Info("checkout session created", zap.String("step", "create_session"),
		zap.String("sessionId", session.ID), zap.Int("invoices", len(invoiceIDs)))

	return &SessionResult{URL: session.URL, SessionID: session.ID}, nil
}

// lineItemName labels a checkout line with the invoice title and a truncated
// identifier so the resident can tell charges apart on the gateway page.
func lineItemName(inv models.Invoice) string {
	id := inv.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s (%s)", inv.Title, id)
}
