package jobs

import (
	"fmt"
	"time"

	"github.com/sedastudio/boutique/pkg/mail"
	"github.com/sedastudio/boutique/pkg/metrics"
)

// LoginCodeEmailJob delivers a one-time login code. Dispatched from the
// auth flow; the request returns before this runs.
type LoginCodeEmailJob struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (j *LoginCodeEmailJob) Handle() error {
	start := time.Now()

	err := mail.To(j.Email).
		Subject("Tu código de acceso a Seda Boutique").
		Body(j.body()).
		Send()

	status := "success"
	if err != nil {
		status = "failed"
	}
	metrics.RecordQueueJob("LoginCodeEmailJob", status, start)
	return err
}

func (j *LoginCodeEmailJob) body() string {
	minutes := int(time.Until(j.ExpiresAt).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(`
		<h2>Tu código de acceso</h2>
		<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
		<p>Vence en %d minutos. Si no lo pediste, ignorá este correo.</p>`,
		j.Code, minutes)
}
