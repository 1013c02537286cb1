package mailers

import (
	"fmt"

	"github.com/sedastudio/boutique/pkg/notification"
)

// OrderPaidNotification tells the team channel about a paid order.
type OrderPaidNotification struct {
	OrderID      string
	ProductTitle string
	Value        float64
}

func (n *OrderPaidNotification) Via() []string { return []string{"slack"} }

func (n *OrderPaidNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("💸 Pedido pagado: %s", n.OrderID),
		Attachments: []notification.SlackAttachment{{
			Color: "good",
			Title: n.ProductTitle,
			Text:  fmt.Sprintf("Total: %.2f", n.Value),
		}},
	}
}

// SlackNotifier implements the internal notifier over the Slack channel.
type SlackNotifier struct{}

// NewSlackNotifier returns the production notifier.
func NewSlackNotifier() *SlackNotifier { return &SlackNotifier{} }

// NotifyOrderPaid fires the team notification without blocking the caller.
func (s *SlackNotifier) NotifyOrderPaid(orderID, productTitle string, value float64) {
	notification.SendAsync("", &OrderPaidNotification{
		OrderID:      orderID,
		ProductTitle: productTitle,
		Value:        value,
	})
}
