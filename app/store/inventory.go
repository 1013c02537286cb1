// Package store holds the in-process stores behind the service layer.
//
// Every store is an injected abstraction over a mutex-guarded map, so the
// services never touch ambient globals and a database-backed implementation
// can be swapped in without changing callers. Values are cloned on the way
// in and out; a caller can never mutate a stored record through a snapshot.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/sedastudio/boutique/app/models"
)

// Inventory owns the product records and their stock counters.
//
// All writes go through Update under the store lock, which is what makes a
// reserve (read-check-decrement) atomic per product: the reservation
// service performs the whole sequence inside Mutate.
type Inventory struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{products: make(map[string]models.Product)}
}

// Seed replaces the whole catalog. Meant for boot and tests.
func (s *Inventory) Seed(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[string]models.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = cloneProduct(p)
	}
}

// List returns a snapshot of every product, sorted by ID so callers (and
// the search replica in particular) always see a stable order.
func (s *Inventory) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the product with the given ID.
func (s *Inventory) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}
	return cloneProduct(p), true
}

// Mutate applies fn to the product under the store lock and persists the
// result. fn runs with exclusive access to the counter, so a
// check-then-decrement inside fn cannot race with another reservation.
// Returns ok=false when the product does not exist; when fn returns an
// error nothing is written and the error is passed through.
func (s *Inventory) Mutate(id string, fn func(p models.Product) (models.Product, error)) (models.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return models.Product{}, false, nil
	}

	next, err := fn(cloneProduct(current))
	if err != nil {
		return models.Product{}, true, err
	}

	next.UpdatedAt = time.Now().UTC()
	s.products[id] = cloneProduct(next)
	return next, true, nil
}

func cloneProduct(p models.Product) models.Product {
	clone := p
	clone.Tags = append([]string(nil), p.Tags...)
	clone.Gallery = append([]string(nil), p.Gallery...)
	return clone
}
