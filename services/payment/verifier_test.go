package payment

import (
	"context"
	"testing"

	"asumo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPaymentSession(t *testing.T) {
	origin := "https://portal.example"

	initiate := func(t *testing.T, svc *DefaultPaymentService, bearer string, req models.CreatePaymentSessionRequest) string {
		t.Helper()
		res, err := svc.CreatePaymentSession(context.Background(), bearer, req, origin)
		require.NoError(t, err)
		return res.SessionID
	}

	t.Run("end to end: two invoices reconciled", func(t *testing.T) {
		store := newFakeStore(
			unpaidInvoice("inv-a", "user-anna", 45.00),
			unpaidInvoice("inv-b", "user-anna", 10.50),
		)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		sessionID := initiate(t, svc, bearerA, models.CreatePaymentSessionRequest{InvoiceIDs: []string{"inv-a", "inv-b"}})
		gw.markPaid(sessionID)

		res, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		require.NoError(t, err)
		assert.True(t, res.Paid)
		assert.ElementsMatch(t, []string{"inv-a", "inv-b"}, res.InvoiceIDs)
		assert.Equal(t, models.InvoiceStatusPaid, store.status("inv-a"))
		assert.Equal(t, models.InvoiceStatusPaid, store.status("inv-b"))
	})

	t.Run("pending session is a non-error non-mutation", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		sessionID := initiate(t, svc, bearerA, models.CreatePaymentSessionRequest{})

		res, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		require.NoError(t, err)
		assert.False(t, res.Paid)
		assert.Empty(t, res.InvoiceIDs)
		assert.Equal(t, models.InvoiceStatusUnpaid, store.status("inv-a"))
	})

	t.Run("verifying twice is idempotent", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		sessionID := initiate(t, svc, bearerA, models.CreatePaymentSessionRequest{})
		gw.markPaid(sessionID)

		first, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		require.NoError(t, err)
		second, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		require.NoError(t, err)

		assert.True(t, first.Paid)
		assert.True(t, second.Paid)
		assert.Equal(t, first.InvoiceIDs, second.InvoiceIDs)
		assert.Equal(t, models.InvoiceStatusPaid, store.status("inv-a"))
	})

	t.Run("another user's session id fails with identity mismatch", func(t *testing.T) {
		store := newFakeStore(
			unpaidInvoice("inv-a", "user-anna", 45.00),
			unpaidInvoice("inv-x", "user-bertil", 99.00),
		)
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		// Bertil initiates and pays; Anna replays his session id.
		sessionID := initiate(t, svc, bearerB, models.CreatePaymentSessionRequest{})
		gw.markPaid(sessionID)

		_, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		assert.ErrorIs(t, err, ErrIdentityMismatch)
		assert.Equal(t, models.InvoiceStatusUnpaid, store.status("inv-a"))
		assert.Equal(t, models.InvoiceStatusUnpaid, store.status("inv-x"))
	})

	t.Run("missing session id", func(t *testing.T) {
		svc := newTestService(newFakeStore(), newFakeGateway())
		_, err := svc.VerifyPaymentSession(context.Background(), bearerA, "")
		assert.ErrorIs(t, err, ErrMissingSessionID)
	})

	t.Run("missing credential", func(t *testing.T) {
		svc := newTestService(newFakeStore(), newFakeGateway())
		_, err := svc.VerifyPaymentSession(context.Background(), "", "cs_test_1")
		assert.ErrorIs(t, err, ErrMissingCredential)
	})

	t.Run("unknown session surfaces as gateway unavailable", func(t *testing.T) {
		svc := newTestService(newFakeStore(), newFakeGateway())
		_, err := svc.VerifyPaymentSession(context.Background(), bearerA, "cs_missing")
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("stripped metadata is an error, never silently ignored", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		sessionID := initiate(t, svc, bearerA, models.CreatePaymentSessionRequest{})
		gw.markPaid(sessionID)
		gw.sessions[sessionID].Metadata = map[string]string{MetadataUserID: "user-anna"}

		_, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		assert.ErrorIs(t, err, ErrMissingInvoiceMetadata)
		assert.Equal(t, models.InvoiceStatusUnpaid, store.status("inv-a"))
	})

	t.Run("store failure during mark paid", func(t *testing.T) {
		store := newFakeStore(unpaidInvoice("inv-a", "user-anna", 45.00))
		gw := newFakeGateway()
		svc := newTestService(store, gw)

		sessionID := initiate(t, svc, bearerA, models.CreatePaymentSessionRequest{})
		gw.markPaid(sessionID)
		store.markErr = assert.AnError

		_, err := svc.VerifyPaymentSession(context.Background(), bearerA, sessionID)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}
