package jobs

import (
	"fmt"
	"time"

	"github.com/sedastudio/boutique/pkg/mail"
	"github.com/sedastudio/boutique/pkg/metrics"
)

// PaymentConfirmationJob mails the receipt for a paid order.
type PaymentConfirmationJob struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	OrderID      string  `json:"orderId"`
	ProductTitle string  `json:"productTitle"`
	Total        float64 `json:"total"`
	Currency     string  `json:"currency"`
}

func (j *PaymentConfirmationJob) Handle() error {
	start := time.Now()

	err := mail.To(j.Email).
		Subject("¡Gracias por tu compra en Seda Boutique!").
		Body(j.body()).
		Send()

	status := "success"
	if err != nil {
		status = "failed"
	}
	metrics.RecordQueueJob("PaymentConfirmationJob", status, start)
	return err
}

func (j *PaymentConfirmationJob) body() string {
	greeting := "Hola"
	if j.Name != "" {
		greeting = "Hola " + j.Name
	}
	return fmt.Sprintf(`
		<h2>%s, tu pago fue aprobado</h2>
		<p>Pedido <strong>%s</strong></p>
		<p>%s — %.2f %s</p>
		<p>Te avisaremos cuando el envío esté en camino.</p>`,
		greeting, j.OrderID, j.ProductTitle, j.Total, j.Currency)
}
