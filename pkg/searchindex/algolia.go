package searchindex

import (
	"fmt"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/config"
)

// Algolia is the production RemoteIndex.
type Algolia struct {
	index *search.Index
}

// NewAlgolia builds the Algolia-backed index from config. Returns ok=false
// when the app id, API key or index name is missing; the search service
// then runs replica-only.
func NewAlgolia() (*Algolia, bool) {
	appID := config.SearchAppID()
	apiKey := config.SearchAPIKey()
	indexName := config.SearchIndexName()
	if appID == "" || apiKey == "" || indexName == "" {
		return nil, false
	}

	client := search.NewClient(appID, apiKey)
	return &Algolia{index: client.InitIndex(indexName)}, true
}

// ReplaceAll upserts records and waits for the batch to be indexed, so a
// sync followed by a query sees the fresh catalog.
func (a *Algolia) ReplaceAll(records []Record) error {
	res, err := a.index.SaveObjects(records)
	if err != nil {
		return fmt.Errorf("searchindex: save objects: %w", err)
	}
	if err := res.Wait(); err != nil {
		return fmt.Errorf("searchindex: wait for batch: %w", err)
	}
	return nil
}

// Clear removes every record from the index.
func (a *Algolia) Clear() error {
	res, err := a.index.ClearObjects()
	if err != nil {
		return fmt.Errorf("searchindex: clear objects: %w", err)
	}
	if err := res.Wait(); err != nil {
		return fmt.Errorf("searchindex: wait for clear: %w", err)
	}
	return nil
}

// Search runs a paginated query against the remote index.
func (a *Algolia) Search(query string, offset, limit int) (Result, error) {
	res, err := a.index.Search(query, opt.Offset(offset), opt.Length(limit))
	if err != nil {
		return Result{}, fmt.Errorf("searchindex: query: %w", err)
	}

	var records []Record
	if err := res.UnmarshalHits(&records); err != nil {
		return Result{}, fmt.Errorf("searchindex: decode hits: %w", err)
	}

	hits := make([]models.Product, 0, len(records))
	for _, r := range records {
		hits = append(hits, r.Product)
	}

	total := res.NbHits
	if total == 0 {
		total = len(hits)
	}
	return Result{Hits: hits, Total: total}, nil
}
