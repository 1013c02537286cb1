package models

import "time"

// ProductMetadata groups the merchandising attributes of a catalog entry.
type ProductMetadata struct {
	Category             string `json:"category"`
	ShippingEstimateDays int    `json:"shippingEstimateDays"`
	Location             string `json:"location"`
	Featured             bool   `json:"featured"`
}

// Product is a catalog entry with its live stock counter.
//
// Stock is never written directly by callers; only the reservation service
// mutates it, one unit at a time, so it can never go negative.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Title       string          `json:"title"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	Stock       int             `json:"stock"`
	Tags        []string        `json:"tags"`
	HeroImage   string          `json:"heroImage"`
	Gallery     []string        `json:"gallery"`
	Metadata    ProductMetadata `json:"metadata"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// InStock reports whether at least one unit can still be reserved.
func (p Product) InStock() bool { return p.Stock > 0 }
