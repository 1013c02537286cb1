package models

import "time"

// OrderStatus is the first-class state of an order.
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending-payment"
	StatusPaid           OrderStatus = "paid"
	StatusFailed         OrderStatus = "failed"
	StatusInTransit      OrderStatus = "in-transit"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Fulfillment annotations recorded in history without being first-class
// transition targets of the payment state machine.
const (
	EventPacked  = "packed"
	EventShipped = "shipped"
)

// HistoryEntry is an immutable, timestamped note describing a status
// transition or external event. History is append-only.
type HistoryEntry struct {
	Status string    `json:"status"` // OrderStatus or a fulfillment annotation
	Note   string    `json:"note"`
	At     time.Time `json:"at"`
}

// Order is one checkout intent for a single product unit.
//
// Total and Currency are captured from the product at creation time and are
// never recomputed from the live catalog price.
type Order struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"userId"`
	ProductID        string                 `json:"productId"`
	Status           OrderStatus            `json:"status"`
	Currency         string                 `json:"currency"`
	Total            float64                `json:"total"`
	PaymentProvider  string                 `json:"paymentProvider"`
	PaymentReference string                 `json:"paymentReference"`
	PaymentURL       string                 `json:"paymentUrl"`
	Metadata         map[string]interface{} `json:"metadata"`
	History          []HistoryEntry         `json:"history"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// AppendHistory returns the order with a new history entry added. The
// existing slice is copied so shared snapshots never see the mutation.
func (o Order) AppendHistory(status, note string, at time.Time) Order {
	history := make([]HistoryEntry, len(o.History), len(o.History)+1)
	copy(history, o.History)
	o.History = append(history, HistoryEntry{Status: status, Note: note, At: at})
	return o
}
