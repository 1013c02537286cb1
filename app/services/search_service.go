package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/cache"
	"github.com/sedastudio/boutique/pkg/collection"
	"github.com/sedastudio/boutique/pkg/logger"
	"github.com/sedastudio/boutique/pkg/metrics"
	"github.com/sedastudio/boutique/pkg/searchindex"
)

// maxSearchLimit caps what a single remote query may ask for.
const maxSearchLimit = 50

// remoteCacheTTL bounds how stale a cached remote answer may get; the
// index is replaced wholesale on sync, so a short window is enough.
const remoteCacheTTL = time.Minute

// SearchService keeps the remote index in step with the inventory and
// answers catalog searches, remote-first with a replica fallback.
type SearchService struct {
	inv    *store.Inventory
	remote searchindex.RemoteIndex // nil when unconfigured
}

// NewSearchService wires the search layer. remote may be nil; the service
// then serves replica-only and reports not ready.
func NewSearchService(inv *store.Inventory, remote searchindex.RemoteIndex) *SearchService {
	return &SearchService{inv: inv, remote: remote}
}

// IsReady reports whether a remote index is configured.
func (s *SearchService) IsReady() bool {
	return s != nil && s.remote != nil
}

// SyncResult describes one index refresh.
type SyncResult struct {
	Synced bool `json:"synced"`
	Total  int  `json:"total"`
}

// SyncInventory pushes the in-stock catalog to the remote index: clears it
// when nothing is in stock, otherwise upserts the full filtered set keyed
// by product id. A no-op when the remote index is unconfigured.
func (s *SearchService) SyncInventory() (SyncResult, error) {
	if !s.IsReady() {
		metrics.IndexSyncs.WithLabelValues("skipped").Inc()
		return SyncResult{Synced: false}, nil
	}

	inStock := filterInStock(s.inv.List())

	if len(inStock) == 0 {
		if err := s.remote.Clear(); err != nil {
			metrics.IndexSyncs.WithLabelValues("failed").Inc()
			return SyncResult{}, err
		}
		metrics.IndexSyncs.WithLabelValues("synced").Inc()
		return SyncResult{Synced: true, Total: 0}, nil
	}

	if err := s.remote.ReplaceAll(searchindex.ToRecords(inStock)); err != nil {
		metrics.IndexSyncs.WithLabelValues("failed").Inc()
		return SyncResult{}, err
	}

	metrics.IndexSyncs.WithLabelValues("synced").Inc()
	return SyncResult{Synced: true, Total: len(inStock)}, nil
}

// Diagnostics reports how a search request was served.
type Diagnostics struct {
	InventorySize int    `json:"inventorySize"`
	InStock       int    `json:"filteredForStock"`
	Hits          int    `json:"hits"`
	Mode          string `json:"mode"` // "remote" | "replica"
}

// SearchResult is one answered search.
type SearchResult struct {
	Total       int              `json:"total"`
	Items       []models.Product `json:"items"`
	Offset      int              `json:"offset"`
	Limit       int              `json:"limit"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}

// Run answers a search. Non-empty queries try the remote index first;
// remote absence, failure or an empty query falls back to the replica
// ranking over in-stock inventory. Offset/limit slicing happens here.
func (s *SearchService) Run(query string, offset, limit int) SearchResult {
	inventory := s.inv.List()
	inStock := filterInStock(inventory)

	offset = max(0, offset)
	limit = clamp(limit, 1, maxSearchLimit)

	trimmed := strings.TrimSpace(query)
	if s.IsReady() && trimmed != "" {
		if result, ok := s.searchRemote(trimmed, offset, limit); ok {
			metrics.SearchRequests.WithLabelValues("remote").Inc()
			return SearchResult{
				Total:  result.Total,
				Items:  result.Hits,
				Offset: offset,
				Limit:  limit,
				Diagnostics: Diagnostics{
					InventorySize: len(inventory),
					InStock:       len(inStock),
					Hits:          result.Total,
					Mode:          "remote",
				},
			}
		}
	}

	ranked := rankReplica(inStock, query)
	slice := paginate(ranked, offset, limit)

	metrics.SearchRequests.WithLabelValues("replica").Inc()
	return SearchResult{
		Total:  len(ranked),
		Items:  slice,
		Offset: offset,
		Limit:  limit,
		Diagnostics: Diagnostics{
			InventorySize: len(inventory),
			InStock:       len(inStock),
			Hits:          len(ranked),
			Mode:          "replica",
		},
	}
}

func (s *SearchService) searchRemote(query string, offset, limit int) (searchindex.Result, bool) {
	key := fmt.Sprintf("search:%s:%d:%d", query, offset, limit)

	var cached searchindex.Result
	if cache.Get(key, &cached) {
		return cached, true
	}

	result, err := s.remote.Search(query, offset, limit)
	if err != nil {
		logger.Error("search: remote query failed, falling back to replica", "error", err)
		return searchindex.Result{}, false
	}

	_ = cache.Set(key, result, remoteCacheTTL)
	return result, true
}

func filterInStock(products []models.Product) []models.Product {
	return collection.Filter(products, models.Product.InStock)
}

func paginate(products []models.Product, offset, limit int) []models.Product {
	if offset >= len(products) {
		return []models.Product{}
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
