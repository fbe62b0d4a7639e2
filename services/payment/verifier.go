package payment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// VerifyPaymentSession re-fetches a checkout session from the gateway and,
// if the gateway reports it paid, transitions the invoices named in the
// session's metadata to paid. The gateway is the system of record: a
// client-asserted payment status is never accepted. The mutation is a single
// conditional bulk update, so concurrent or repeated verification of the
// same session is a harmless no-op.
func (s *DefaultPaymentService) VerifyPaymentSession(ctx context.Context, bearer, sessionID string) (*VerifyResult, error) {
	log := s.Logger.With(zap.String("op", "verify_payment_session"))

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

	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Error("session fetch failed", zap.String("step", "retrieve_session"),
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// Abandoned or still pending: a normal outcome the client may poll on,
	// deliberately distinguishable from an error. Nothing is mutated.
	if session.PaymentStatus != PaymentStatusPaid {
		log.Info("session not paid", zap.String("step", "check_status"),
			zap.String("sessionId", sessionID), zap.String("paymentStatus", session.PaymentStatus))
		return &VerifyResult{Paid: false}, nil
	}

	// The metadata owner was stamped by the initiator; a mismatch means the
	// caller is trying to confirm somebody else's session.
	if owner := session.Metadata[MetadataUserID]; owner != identity.UserID {
		log.Warn("session owner mismatch", zap.String("step", "check_owner"),
			zap.String("sessionId", sessionID))
		return nil, ErrIdentityMismatch
	}

	raw := session.Metadata[MetadataInvoiceIDs]
	if strings.TrimSpace(raw) == "" {
		log.Error("metadata missing invoice ids", zap.String("step", "parse_metadata"),
			zap.String("sessionId", sessionID))
		return nil, ErrMissingInvoiceMetadata
	}
	invoiceIDs := splitInvoiceIDs(raw)
	if len(invoiceIDs) == 0 {
		return nil, ErrMissingInvoiceMetadata
	}

	// One conditional bulk mutation, owner filter included: defense in depth
	// beyond the metadata check above, and naturally idempotent.
	matched, err := s.Invoices.MarkPaid(ctx, identity.UserID, invoiceIDs)
	if err != nil {
		log.Error("mark paid failed", zap.String("step", "mark_paid"),
			zap.String("sessionId", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	log.Info("invoices reconciled", zap.String("step", "mark_paid"),
		zap.String("sessionId", sessionID), zap.Int("invoices", len(invoiceIDs)),
		zap.Int64("matched", matched))

	return &VerifyResult{Paid: true, InvoiceIDs: invoiceIDs}, nil
}

func splitInvoiceIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
