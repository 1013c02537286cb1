// Package jobs holds the background jobs dispatched by the service layer.
// Every job type must be registered at boot so the queue workers can
// deserialize it by name.
package jobs

import "github.com/sedastudio/boutique/pkg/queue"

// RegisterAll makes every job type known to the queue. Call once at boot,
// before StartWorkers.
func RegisterAll() {
	queue.Register("*jobs.LoginCodeEmailJob", func() queue.Job { return &LoginCodeEmailJob{} })
	queue.Register("*jobs.PaymentConfirmationJob", func() queue.Job { return &PaymentConfirmationJob{} })
}
