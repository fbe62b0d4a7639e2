package payment

import (
	"context"
	"testing"
	"time"

	"asumo/models"
	"asumo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	bearerA = "bearer-anna"
	bearerB = "bearer-bertil"
)

func testIdentities() map[string]models.Identity {
	return map[string]models.Identity{
		bearerA: {UserID: "user-anna", Email: "anna@example.com"},
		bearerB: {UserID: "user-bertil", Email: "bertil@example.com"},
	}
}

func unpaidInvoice(id, userID string, amount float64) models.Invoice {
	return models.Invoice{
		ID:      id,
		UserID:  userID,
		Title:   "Hoitovastike",
		Amount:  amount,
		DueDate: time.Now().Add(14 * 24 * time.Hour),
		Status:  models.InvoiceStatusUnpaid,
	}
}

func newTestService(store *fakeStore, gw *fakeGateway) *DefaultPaymentService {
	return NewDefaultPaymentService(
		&fakeAuth{identities: testIdentities()},
		store, gw, zap.NewNop(),
	)
}

func TestCreatePaymentSession(t *testing.T) {
	origin := "https://portal.example"

	t.Run("aggregates selected invoices into one session", func(t *testing.T) {
		store := newFakeStore(
			unpaidInvoice("inv-a", "user-anna", 45.00),
			unpaidInvoice("inv-b", "user-anna", 10.50),
		)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		res, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{InvoiceIDs: []string{"inv-b", "inv-a"}}, origin)
		require.NoError(t, err)
		require.NotEmpty(t, res.SessionID)
		assert.Contains(t, res.URL, res.SessionID)

		require.Len(t, gw.created, 1)
		params := gw.created[0]
		require.Len(t, params.LineItems, 2)

		var total int64
		for _, li := range params.LineItems {
			total += li.AmountMinor
		}
		assert.Equal(t, int64(5550), total)
		assert.Equal(t, "inv-a,inv-b", params.Metadata[MetadataInvoiceIDs])
		assert.Equal(t, "user-anna", params.Metadata[MetadataUserID])
		assert.Equal(t, origin+"/payment-success?session_id={CHECKOUT_SESSION_ID}", params.SuccessURL)
		assert.Equal(t, origin+"/payment-cancelled", params.CancelURL)
	})

	t.Run("sentinel all selects every unpaid invoice", func(t *testing.T) {
		store := newFakeStore(
			unpaidInvoice("inv-a", "user-anna", 45.00),
			unpaidInvoice("inv-b", "user-anna", 10.50),
			unpaidInvoice("inv-x", "user-bertil", 99.00),
		)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		// "all" overrides the explicit list.
		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{InvoiceID: SelectionAll, InvoiceIDs: []string{"inv-a"}}, origin)
		require.NoError(t, err)

		require.Len(t, gw.created, 1)
		assert.Len(t, gw.created[0].LineItems, 2)
		assert.Equal(t, "inv-a,inv-b", gw.created[0].Metadata[MetadataInvoiceIDs])
	})

	t.Run("single invoice id selection", func(t *testing.T) {
		store := newFakeStore(
			unpaidInvoice("inv-a", "user-anna", 45.00),
			unpaidInvoice("inv-b", "user-anna", 10.50),
		)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{InvoiceID: "inv-b"}, origin)
		require.NoError(t, err)
		assert.Equal(t, "inv-b", gw.created[0].Metadata[MetadataInvoiceIDs])
	})

	t.Run("missing credential", func(t *testing.T) {
		svc := newTestService(newFakeStore(), newFakeGateway())
		_, err := svc.CreatePaymentSession(context.Background(), "",
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("unknown bearer", func(t *testing.T) {
		svc := newTestService(newFakeStore(), newFakeGateway())
		_, err := svc.CreatePaymentSession(context.Background(), "bearer-nobody",
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("identity without email fails closed", func(t *testing.T) {
		svc := NewDefaultPaymentService(
			&fakeAuth{identities: map[string]models.Identity{"b": {UserID: "u"}}},
			newFakeStore(), newFakeGateway(), zap.NewNop(),
		)
		_, err := svc.CreatePaymentSession(context.Background(), "b",
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("nonexistent and already paid ids yield no payable invoices", func(t *testing.T) {
		paid := unpaidInvoice("inv-paid", "user-anna", 20.00)
		paid.Status = models.InvoiceStatusPaid
		store := newFakeStore(paid)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{InvoiceIDs: []string{"inv-paid", "inv-ghost"}}, origin)
		assert.ErrorIs(t, err, ErrNoPayableInvoices)
		assert.Empty(t, gw.created)
	})

	t.Run("another user's invoices are never payable", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-x", "user-bertil", 99.00))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{InvoiceIDs: []string{"inv-x"}}, origin)
		assert.ErrorIs(t, err, ErrNoPayableInvoices)
		assert.Empty(t, gw.created)
	})

	t.Run("store failure surfaces as store unavailable", func(t *testing.T) {
		store := newFakeStore()
		store.findErr = assert.AnError
		svc := newTestService(store, newFakeGateway())

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("gateway failure surfaces as gateway unavailable", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		gw.createErr = assert.AnError
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("sub-cent amounts are rejected, not rounded", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-odd", "user-anna", 12.345))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{}, origin)
		assert.ErrorIs(t, err, utils.ErrAmountPrecision)
		assert.Empty(t, gw.created)
	})

	t.Run("reuses an existing gateway customer", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		gw.customerIDs["anna@example.com"] = "cus_123"
		svc := newTestService(store, gw)

		_, err := svc.CreatePaymentSession(context.Background(), bearerA,
			models.CreatePaymentSessionRequest{}, origin)
		require.NoError(t, err)
		assert.Equal(t, "cus_123", gw.created[0].CustomerID)
	})
}
