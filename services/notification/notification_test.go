package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"asumo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type recordingMailer struct {
	sent    []EmailTaskPayload
	failFor map[string]bool
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html string) error {
	if m.failFor[to] {
		return errors.New("delivery refused")
	}
	m.sent = append(m.sent, EmailTaskPayload{To: to, Subject: subject, HTML: html})
	return nil
}

func TestComposeInvoiceEmail(t *testing.T) {
	inv := models.Invoice{
		ID:      "inv-1",
		Title:   "Hoitovastike 6/2026",
		Amount:  245.50,
		DueDate: time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	subject, html, err := ComposeInvoiceEmail(inv)
	require.NoError(t, err)
	assert.Contains(t, subject, "Hoitovastike 6/2026")
	assert.Contains(t, html, "245,50")
	assert.Contains(t, html, "30.06.2026")
}

func TestComposeInvoiceEmailRejectsBadAmount(t *testing.T) {
	_, _, err := ComposeInvoiceEmail(models.Invoice{Title: "x", Amount: 1.005})
	assert.Error(t, err)
}

func TestQueueInvoiceEmailFallsBackToDirectSend(t *testing.T) {
	mailer := &recordingMailer{}
	svc, err := NewDefaultNotificationService(mailer, nil, rate.NewLimiter(rate.Inf, 1))
	require.NoError(t, err)

	inv := models.Invoice{Title: "Vesimaksu", Amount: 18.00, DueDate: time.Now()}
	require.NoError(t, svc.QueueInvoiceEmail(context.Background(), "anna@example.com", inv))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "anna@example.com", mailer.sent[0].To)
}

func TestBroadcastNewsSkipsFailedRecipients(t *testing.T) {
	mailer := &recordingMailer{failFor: map[string]bool{"bad@example.com": true}}
	svc, err := NewDefaultNotificationService(mailer, nil, rate.NewLimiter(rate.Inf, 1))
	require.NoError(t, err)

	recipients := []string{"a@example.com", "bad@example.com", "c@example.com"}
	require.NoError(t, svc.BroadcastNews(context.Background(), "Tiedote", "<p>hei</p>", recipients))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "a@example.com", mailer.sent[0].To)
	assert.Equal(t, "c@example.com", mailer.sent[1].To)
}

func TestBroadcastNewsHonorsContextCancellation(t *testing.T) {
	mailer := &recordingMailer{}
	// One send per hour: the second Wait must block until the context dies.
	svc, err := NewDefaultNotificationService(mailer, nil, rate.NewLimiter(rate.Every(time.Hour), 1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = svc.BroadcastNews(ctx, "Tiedote", "<p>hei</p>", []string{"a@example.com", "b@example.com"})
	assert.Error(t, err)
	assert.Len(t, mailer.sent, 1)
}
