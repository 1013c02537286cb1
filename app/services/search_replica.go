package services

import (
	"sort"
	"strings"

	"github.com/sedastudio/boutique/app/models"
)

// rankReplica is the in-process fallback ranking used when the remote
// index is unconfigured or failing.
//
// The query is tokenized on whitespace after trimming and lower-casing.
// Each product is scored by how many query tokens appear as a substring of
// its search blob (title, summary, description, tags, category); a token
// counts once no matter how often it repeats. Zero-score products are
// dropped, the rest sort descending by score with ties keeping their
// original relative order.
func rankReplica(records []models.Product, query string) []models.Product {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return records
	}

	keywords := strings.Fields(normalized)

	type scored struct {
		product models.Product
		score   int
	}

	ranked := make([]scored, 0, len(records))
	for _, p := range records {
		if s := scoreProduct(p, keywords); s > 0 {
			ranked = append(ranked, scored{product: p, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]models.Product, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.product)
	}
	return out
}

func scoreProduct(p models.Product, keywords []string) int {
	blob := strings.ToLower(strings.Join([]string{
		p.Title,
		p.Summary,
		p.Description,
		strings.Join(p.Tags, " "),
		p.Metadata.Category,
	}, " "))

	score := 0
	for _, keyword := range keywords {
		if strings.Contains(blob, keyword) {
			score++
		}
	}
	return score
}
