package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"asumo/models"
	"asumo/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TypeEmailSend is the asynq task type for a single outbound email.
const TypeEmailSend = "email:send"

// EmailTaskPayload is the queued form of one outbound email.
type EmailTaskPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// NotificationService defines the portal's outbound email operations.
// Invoice mails are queued for the background worker; news broadcasts fan
// out inline, throttled to respect the mail provider's rate limits.
type NotificationService interface {
	QueueInvoiceEmail(ctx context.Context, to string, inv models.Invoice) error
	BroadcastNews(ctx context.Context, subject, html string, recipients []string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Mailer  Mailer
	Queue   *asynq.Client
	Limiter *rate.Limiter
}

// NewDefaultNotificationService wires up the notification service.
func NewDefaultNotificationService(mailer Mailer, queue *asynq.Client, limiter *rate.Limiter) (*DefaultNotificationService, error) {
	if mailer == nil {
		return nil, fmt.Errorf("notification service initialization error: mailer is nil")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(2), 5)
	}
	return &DefaultNotificationService{
		Mailer:  mailer,
		Queue:   queue,
		Limiter: limiter,
	}, nil
}

// ComposeInvoiceEmail renders the subject and body for a new-invoice mail.
func ComposeInvoiceEmail(inv models.Invoice) (subject, html string, err error) {
	cents, err := utils.MinorUnits(inv.Amount)
	if err != nil {
		return "", "", err
	}
	subject = fmt.Sprintf("Uusi lasku: %s", inv.Title)
	html = fmt.Sprintf(
		"<p>Sinulle on uusi lasku.</p><p><strong>%s</strong><br>Summa: %s<br>Eräpäivä: %s</p>",
		inv.Title, utils.FormatEuros(cents), inv.DueDate.Format("02.01.2006"),
	)
	return subject, html, nil
}

// QueueInvoiceEmail enqueues a new-invoice mail for the background worker.
// Without a queue client it degrades to a direct send.
func (s *DefaultNotificationService) QueueInvoiceEmail(ctx context.Context, to string, inv models.Invoice) error {
	subject, html, err := ComposeInvoiceEmail(inv)
	if err != nil {
		return fmt.Errorf("QueueInvoiceEmail: %w", err)
	}

	if s.Queue == nil {
		return s.Mailer.Send(ctx, to, subject, html)
	}

	payload, err := json.Marshal(EmailTaskPayload{To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("QueueInvoiceEmail: marshal payload: %w", err)
	}
	task := asynq.NewTask(TypeEmailSend, payload)
	if _, err := s.Queue.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("QueueInvoiceEmail: enqueue: %w", err)
	}
	return nil
}

// BroadcastNews sends a news mail to every recipient, pacing sends through
// the limiter. Individual delivery failures are logged and skipped so one
// bad address cannot stall the whole fan-out.
func (s *DefaultNotificationService) BroadcastNews(ctx context.Context, subject, html string, recipients []string) error {
	logger := utils.GetLogger()
	for _, to := range recipients {
		if err := s.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("BroadcastNews: %w", err)
		}
		if err := s.Mailer.Send(ctx, to, subject, html); err != nil {
			logger.Warn("BroadcastNews: delivery failed",
				zap.String("to", to), zap.Error(err))
		}
	}
	return nil
}
