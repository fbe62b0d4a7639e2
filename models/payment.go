package models

// CreatePaymentSessionRequest selects which invoices a checkout session
// should cover. InvoiceID set to "all" means every unpaid invoice owned by
// the caller and overrides any id list.
type CreatePaymentSessionRequest struct {
	InvoiceID  string   `json:"invoiceId,omitempty"`
	InvoiceIDs []string `json:"invoiceIds,omitempty"`
}

// CreatePaymentSessionResponse carries the gateway redirect target.
type CreatePaymentSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// VerifyPaymentRequest references a completed checkout session.
type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// VerifyPaymentResponse reports the reconciliation outcome. Success false
// with a 200 status means the gateway has not (yet) collected the payment;
// it is deliberately distinguishable from an error.
type VerifyPaymentResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	InvoiceIDs []string `json:"invoiceIds,omitempty"`
}
