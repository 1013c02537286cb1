// Package services holds the business layer: reservation, auth, order
// lifecycle and search. Controllers stay thin and call into these.
package services

import (
	"time"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/cache"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/metrics"
)

const (
	catalogCacheKey = "boutique:catalog:list"
	catalogCacheTTL = 30 * time.Second
)

// ProductService owns catalog reads and the stock reservation pair. Stock
// only ever changes through Reserve and Release.
type ProductService struct {
	inv *store.Inventory
}

// NewProductService creates the service over the inventory store.
func NewProductService(inv *store.Inventory) *ProductService {
	return &ProductService{inv: inv}
}

// List returns the whole catalog. The listing is cached briefly in Redis
// since it is the storefront's hottest read and the catalog only changes
// through reservations.
func (s *ProductService) List() []models.Product {
	var cached []models.Product
	if cache.Get(catalogCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return cached
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	products := s.inv.List()
	_ = cache.Set(catalogCacheKey, products, catalogCacheTTL)
	return products
}

// Get returns one product by id.
func (s *ProductService) Get(productID string) (models.Product, error) {
	p, ok := s.inv.Get(productID)
	if !ok {
		return models.Product{}, httperr.NotFound("Producto no encontrado")
	}
	return p, nil
}

// Reserve takes exactly one unit of stock for the product. Fails NotFound
// for unknown products and Conflict when the counter is at zero; the
// check-then-decrement runs atomically inside the store lock.
func (s *ProductService) Reserve(productID string) (models.Product, error) {
	updated, ok, err := s.inv.Mutate(productID, func(p models.Product) (models.Product, error) {
		if p.Stock <= 0 {
			return p, httperr.Conflict("Sin stock disponible")
		}
		p.Stock--
		return p, nil
	})
	if !ok {
		return models.Product{}, httperr.NotFound("Producto no encontrado")
	}
	if err != nil {
		metrics.ReservationConflicts.Inc()
		return models.Product{}, err
	}

	_ = cache.Forget(catalogCacheKey)
	return updated, nil
}

// Release returns one unit of stock. The increment is unconditional:
// releasing more than was reserved is a caller error, not guarded here.
func (s *ProductService) Release(productID string) (models.Product, error) {
	updated, ok, err := s.inv.Mutate(productID, func(p models.Product) (models.Product, error) {
		p.Stock++
		return p, nil
	})
	if !ok {
		return models.Product{}, httperr.NotFound("Producto no encontrado")
	}
	if err != nil {
		return models.Product{}, err
	}

	_ = cache.Forget(catalogCacheKey)
	return updated, nil
}
