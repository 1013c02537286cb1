// Package searchindex abstracts the remote product index. The search
// service pushes the in-stock catalog here and queries it; when the remote
// side is unconfigured or failing, callers fall back to the in-process
// replica ranking.
package searchindex

import (
	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/pkg/collection"
)

// Record is a product as stored in the remote index, keyed by product ID.
type Record struct {
	models.Product
	ObjectID string `json:"objectID"`
}

// Result is one remote query answer.
type Result struct {
	Hits  []models.Product
	Total int
}

// RemoteIndex is the contract the search service depends on.
type RemoteIndex interface {
	// ReplaceAll upserts the full record set, keyed by ObjectID, and waits
	// for the index to acknowledge the batch.
	ReplaceAll(records []Record) error

	// Clear removes every record from the index.
	Clear() error

	// Search runs a paginated query. Errors are returned so the caller can
	// decide to fall back rather than fail the request.
	Search(query string, offset, limit int) (Result, error)
}

// ToRecords converts products into index records keyed by product ID.
func ToRecords(products []models.Product) []Record {
	return collection.Map(products, func(p models.Product) Record {
		return Record{Product: p, ObjectID: p.ID}
	})
}
