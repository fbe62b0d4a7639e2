package payment

import "errors"

// Every failure of the two operations maps to one of these kinds. All are
// terminal for the current request; retrying is the caller's business and is
// safe because both operations are idempotent with respect to applied state.
var (
	ErrMissingCredential      = errors.New("missing bearer credential")
	ErrUnauthenticated        = errors.New("authentication failed")
	ErrNoPayableInvoices      = errors.New("no payable invoices found")
	ErrMissingSessionID       = errors.New("missing session id")
	ErrIdentityMismatch       = errors.New("session does not belong to the authenticated user")
	ErrMissingInvoiceMetadata = errors.New("session metadata carries no invoice ids")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrStoreUnavailable       = errors.New("invoice store unavailable")
)
