// Package mailers bridges the service layer to outbound mail and team
// notifications. Services call the small interfaces they declare; the
// implementations here dispatch queue jobs or Slack notifications so the
// request path never blocks on SMTP or webhooks.
package mailers

import (
	"time"

	"github.com/sedastudio/boutique/app/jobs"
	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/pkg/logger"
	"github.com/sedastudio/boutique/pkg/queue"
)

// QueueMailer sends transactional mail by dispatching queue jobs.
type QueueMailer struct{}

// NewQueueMailer returns the production mailer.
func NewQueueMailer() *QueueMailer { return &QueueMailer{} }

// SendLoginCode queues the one-time-code email.
func (m *QueueMailer) SendLoginCode(email, code string, expiresAt time.Time) {
	job := &jobs.LoginCodeEmailJob{Email: email, Code: code, ExpiresAt: expiresAt}
	if err := queue.Dispatch(job); err != nil {
		logger.Error("mailers: dispatch login code", "email", email, "error", err)
	}
}

// SendPaymentConfirmation queues the receipt email for a paid order.
func (m *QueueMailer) SendPaymentConfirmation(user models.User, order models.Order, product models.Product) {
	job := &jobs.PaymentConfirmationJob{
		Email:        user.Email,
		Name:         user.Name,
		OrderID:      order.ID,
		ProductTitle: product.Title,
		Total:        order.Total,
		Currency:     order.Currency,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.Error("mailers: dispatch payment confirmation", "order_id", order.ID, "error", err)
	}
}
