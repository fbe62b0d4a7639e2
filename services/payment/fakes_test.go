package payment

import (
	"context"
	"errors"
	"fmt"

	"asumo/models"
)

// fakeAuth resolves every bearer through a fixed table.
type fakeAuth struct {
	identities map[string]models.Identity // bearer -> identity
}

func (f *fakeAuth) VerifyBearer(ctx context.Context, bearer string) (models.Identity, error) {
	id, ok := f.identities[bearer]
	if !ok {
		return models.Identity{}, errors.New("unknown bearer")
	}
	return id, nil
}

// fakeStore is an in-memory invoice store with the same filter semantics as
// the Mongo repository.
type fakeStore struct {
	invoices map[string]*models.Invoice
	findErr  error
	markErr  error
}

func newFakeStore(invoices ...models.Invoice) *fakeStore {
	s := &fakeStore{invoices: make(map[string]*models.Invoice)}
	for i := range invoices {
		inv := invoices[i]
		s.invoices[inv.ID] = &inv
	}
	return s
}

func (f *fakeStore) FindPayableByOwner(ctx context.Context, ownerID string, ids []string) ([]models.Invoice, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.UserID != ownerID || inv.Status == models.InvoiceStatusPaid {
			continue
		}
		if len(ids) > 0 && !idSet[inv.ID] {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (f *fakeStore) MarkPaid(ctx context.Context, ownerID string, ids []string) (int64, error) {
	if f.markErr != nil {
		return 0, f.markErr
	}
	var matched int64
	for _, id := range ids {
		inv, ok := f.invoices[id]
		if !ok || inv.UserID != ownerID {
			continue
		}
		inv.Status = models.InvoiceStatusPaid
		matched++
	}
	return matched, nil
}

func (f *fakeStore) status(id string) string {
	if inv, ok := f.invoices[id]; ok {
		return inv.Status
	}
	return ""
}

// fakeGateway keeps created sessions in memory so a test can flip their
// payment status between the initiate and verify calls.
type fakeGateway struct {
	sessions    map[string]*CheckoutSession
	created     []CheckoutSessionParams
	customerIDs map[string]string // email -> customer id
	createErr   error
	getErr      error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		sessions:    make(map[string]*CheckoutSession),
		customerIDs: make(map[string]string),
	}
}

func (f *fakeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	return f.customerIDs[email], nil
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, params)
	id := fmt.Sprintf("cs_test_%d", len(f.created))
	s := &CheckoutSession{
		ID:            id,
		URL:           "https://checkout.example/" + id,
		PaymentStatus: "unpaid",
		Metadata:      params.Metadata,
	}
	f.sessions[id] = s
	return s, nil
}

func (f *fakeGateway) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", id)
	}
	return s, nil
}

func (f *fakeGateway) markPaid(id string) {
	f.sessions[id].PaymentStatus = PaymentStatusPaid
}
