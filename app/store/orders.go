package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/sedastudio/boutique/app/models"
)

// ErrOrderUnknown is returned by Update when the order was never saved (or
// was deleted by a compensation path).
var ErrOrderUnknown = errors.New("store: order not found")

// Orders is the order ledger, keyed by order ID.
type Orders struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

// NewOrders creates an empty ledger.
func NewOrders() *Orders {
	return &Orders{orders: make(map[string]models.Order)}
}

// Save writes a new order (or overwrites an existing one with the same ID;
// IDs are UUIDs so collisions only happen in tests doing it on purpose).
func (s *Orders) Save(order models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = cloneOrder(order)
	return order
}

// Update overwrites an existing order; fails if the ID is unknown.
func (s *Orders) Update(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return ErrOrderUnknown
	}
	s.orders[order.ID] = cloneOrder(order)
	return nil
}

// Delete removes the order. Used by the create-order compensation path.
func (s *Orders) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, id)
}

// Get returns the order with the given ID.
func (s *Orders) Get(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, false
	}
	return cloneOrder(o), true
}

// ListByUser returns the user's orders, newest first.
func (s *Orders) ListByUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func cloneOrder(o models.Order) models.Order {
	clone := o
	clone.History = append([]models.HistoryEntry(nil), o.History...)
	if o.Metadata != nil {
		meta := make(map[string]interface{}, len(o.Metadata))
		for k, v := range o.Metadata {
			meta[k] = v
		}
		clone.Metadata = meta
	}
	return clone
}
