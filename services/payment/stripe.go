package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
)

// StripeGateway implements Gateway on Stripe Checkout. The API key is the
// global stripe.Key set at startup.
type StripeGateway struct{}

// NewStripeGateway returns the production gateway adapter.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

// FindCustomerByEmail returns the id of an existing Stripe customer with the
// given email, or "" when none exists so the session falls back to
// customer_email and lets Stripe create one.
func (g *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("stripe customer lookup: %w", err)
	}
	return "", nil
}

// CreateCheckoutSession creates a single-payment checkout session with one
// line item per invoice and the reconciliation metadata attached.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Locale:     stripe.String(CheckoutLocale),
	}
	params.Context = ctx

	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	for _, li := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(CheckoutCurrency),
				UnitAmount: stripe.Int64(li.AmountMinor),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			},
		})
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}
	return &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}, nil
}

// GetCheckoutSession re-fetches a session from Stripe. The caller never
// trusts a client-asserted payment status; this fetch is the system of
// record.
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session fetch: %w", err)
	}
	return &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}, nil
}
